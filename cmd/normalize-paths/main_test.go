package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_WritesCorrectedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "catalogo.csv")
	output := filepath.Join(dir, "catalogo_corrigido.csv")
	require.NoError(t, os.WriteFile(input, []byte("referencia,imagem_url\nR1,C:\\p\\catalogo_digital\\imagens\\a.jpg\nR2,E:\\b.jpg\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-i", input, "-o", output})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "CSV corrigido salvo como: "+output)
	assert.Contains(t, out.String(), "linhas: 2, corrigidas: 1, inalteradas: 1")
	assert.Contains(t, out.String(), "1 caminho(s)")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(written), "R1,imagens/a.jpg")
	assert.Contains(t, string(written), `R2,E:\b.jpg`)
}

func TestRootCmd_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "catalogo.csv")
	require.NoError(t, os.WriteFile(input, []byte("referencia,foto\nR1,a.jpg\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--input", input, "--output", filepath.Join(dir, "out.csv")})

	assert.ErrorContains(t, cmd.Execute(), "imagem_url")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"extra"})

	assert.Error(t, cmd.Execute())
}
