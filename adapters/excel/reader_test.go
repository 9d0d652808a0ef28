package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	content := "PassengerId,Survived,Pclass,Name,Sex,Age\n" +
		"1,0,3,\"Braund, Mr. Owen Harris\",male,22\n" +
		"2,1,1,\"Cumings, Mrs. John Bradley\",female,38\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	assert.Len(t, data.Rows, 2)
	assert.True(t, data.HasColumns("Survived", "Sex", "Age"))
	assert.False(t, data.HasColumns("Fare"))
	assert.Equal(t, []string{"male", "female"}, data.Column("Sex"))
	assert.Equal(t, "Cumings, Mrs. John Bradley", data.Rows[1]["Name"])
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Survived", "Sex", "Fare"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "female", 71.2833}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	data, err := NewDataReader(path).ReadData()
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	assert.Equal(t, "1", data.Rows[0]["Survived"])
	assert.Equal(t, "female", data.Rows[0]["Sex"])
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewDataReader(filepath.Join(t.TempDir(), "nope.csv")).ReadData()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Survived,Sex\n"), 0o644))

	_, err := NewDataReader(path).ReadData()
	assert.Error(t, err)
}
