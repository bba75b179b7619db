package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tbl := Table{Name: "promedios", Header: []string{"pregunta_id", "pregunta_texto", "promedio", "total"}}
	tbl.Append("1", "¿Cómo calificas la organización de la JII?", Float(4.25), Int(8))
	tbl.Append("17", "Valora el workshop, \"sinceramente\"", Float(2), Int(3))
	tbl.Append("19", "Comentario con\nsalto de línea", Float(3.5), Int(2))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Header, got.Header)
	assert.Equal(t, tbl.Len(), got.Len())
	assert.Equal(t, tbl.Rows, got.Rows)
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Table{Header: []string{"nombre", "estado_registro"}}))
	assert.Equal(t, "nombre,estado_registro\n", buf.String())
}

func TestWriteCSV_NoHeader(t *testing.T) {
	assert.ErrorIs(t, WriteCSV(&bytes.Buffer{}, Table{}), ErrEmptyHeader)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyHeader)
}

func TestAppendPadsShortRows(t *testing.T) {
	tbl := Table{Header: []string{"a", "b", "c"}}
	tbl.Append("1")
	assert.Equal(t, [][]string{{"1", "", ""}}, tbl.Rows)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2.5", Float(2.5))
	assert.Equal(t, "4", Float(4))
	assert.Equal(t, "12", Int(12))
	assert.Equal(t, "true", Bool(true))
	assert.Equal(t, "participantes_jii2025.csv", FileName("participantes"))
}
