package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, &Table{
		Sheet:   "Applicants",
		Headers: []string{"Roll Number", "Name", "CGPA"},
		Rows: [][]interface{}{
			{"21CS1042", "Asha Rao", 8.7},
			{"21EC1001", "Ravi Kumar", nil},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Applicants")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Roll Number", "Name", "CGPA"}, rows[0])
	assert.Equal(t, "Asha Rao", rows[1][1])
	assert.Equal(t, "8.7", rows[1][2])
}
