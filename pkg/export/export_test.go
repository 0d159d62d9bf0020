package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transcriptDataset() Dataset {
	data := Dataset{Headers: []string{"Assignment", "Percent"}}
	data.AddRow(map[string]string{"Assignment": "HW", "Percent": "80.00"})
	data.AddRow(map[string]string{"Assignment": "Quiz 1", "Percent": "96.00"})
	return data
}

func TestCSVRender(t *testing.T) {
	out, err := NewCSVExporter().Render(transcriptDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Assignment,Percent", lines[0])
	assert.Equal(t, "HW,80.00", lines[1])
	assert.Equal(t, "Quiz 1,96.00", lines[2])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVRenderMissingCellIsEmpty(t *testing.T) {
	data := Dataset{Headers: []string{"Assignment", "Percent"}}
	data.AddRow(map[string]string{"Assignment": "HW"})

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "HW,\n")
}

func TestPDFRender(t *testing.T) {
	out, err := NewPDFExporter().Render(transcriptDataset(), "transcript")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewPDFExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestCellAlignment(t *testing.T) {
	assert.Equal(t, "R", cellAlignment("96.00"))
	assert.Equal(t, "R", cellAlignment(" 7 "))
	assert.Equal(t, "", cellAlignment("Quiz 1"))
	assert.Equal(t, "", cellAlignment(""))
}
