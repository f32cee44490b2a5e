package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_UTF8(t *testing.T) {
	data := []byte("codigo,referencia\n001,Algodão\n")

	table, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, EncodingUTF8, table.Encoding)
	assert.Equal(t, []string{"codigo", "referencia"}, table.Header)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Algodão", table.Records[0][1])
}

func TestDecode_FallsBackToLatin1(t *testing.T) {
	// "Algodão" with ã encoded as a single latin-1 byte (0xE3)
	data := []byte("codigo,referencia\n001,Algod\xe3o\n")

	table, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, EncodingLatin1, table.Encoding)
	assert.Equal(t, "Algodão", table.Records[0][1])
}

func TestDecode_StripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("codigo\n001\n")...)

	table, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "codigo", table.Header[0])
}

func TestDecode_RaggedRecords(t *testing.T) {
	data := []byte("a,b,c\n1,2\n1,2,3,4\n")

	table, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	assert.Equal(t, "", table.Value(table.Records[0], 2))
	assert.Equal(t, "3", table.Value(table.Records[1], 2))
}

func TestDecode_Empty(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestIndex(t *testing.T) {
	table := &Table{Header: []string{" Codigo ", "FAIXA"}}

	assert.Equal(t, 0, table.Index("codigo"))
	assert.Equal(t, 1, table.Index("faixa"))
	assert.Equal(t, -1, table.Index("status"))
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := &Table{
		Header:  []string{"codigo", "composicao"},
		Records: [][]string{{"001", "100% algodão, fio 30"}},
	}

	require.NoError(t, WriteFile(path, table))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "codigo,composicao\n001,\"100% algodão, fio 30\"\n", string(raw))

	read, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, table.Records, read.Records)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_ToBuffer(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &Table{Header: []string{"a"}, Records: [][]string{{"1"}, {"2"}}})
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n2\n", buf.String())
}
