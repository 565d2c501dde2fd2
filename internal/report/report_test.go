package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/cus-report/internal/cus"
	"github.com/JakeFAU/cus-report/internal/docx"
)

var generatedAt = time.Date(2024, 3, 5, 9, 7, 2, 0, time.Local)

func sampleBodies() []cus.RegulatoryBody {
	return []cus.RegulatoryBody{
		{Code: "001", Name: "A", Region: "18", Type: "X", Authority: cus.Authority{INN: "111"}},
		{Code: "002", Name: "B", Region: "77", Type: "Y", Authority: cus.Authority{INN: "222"}},
	}
}

func TestRenderSampleScenario(t *testing.T) {
	t.Parallel()

	data := NewData("run-1", "18", generatedAt, sampleBodies())
	require.Len(t, data.Bodies, 1)
	assert.Equal(t, []cus.TypeCount{{Type: "X", Count: 1}}, data.Counts)

	out, err := Render(data, "cusreport")
	require.NoError(t, err)

	got, err := docx.Extract(out)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Дата выполнения: 05.03.2024 09:07:02",
		"Количество контролирующих органов:",
		"Общее - 1",
		"X - 1",
		"",
	}, got.Paragraphs)
	require.Len(t, got.Tables, 1)
	table := got.Tables[0]
	require.Len(t, table, 2)
	assert.Equal(t, Headers, table[0])
	assert.Equal(t, []string{"1", "X", "001", "A", "111"}, table[1])
	assert.Equal(t, "run-1", got.Identifier)
	assert.Equal(t, "Контролирующие органы региона 18", got.Title)
}

func TestRenderEmptySelection(t *testing.T) {
	t.Parallel()

	data := NewData("run-2", "18", generatedAt, nil)
	out, err := Render(data, "cusreport")
	require.NoError(t, err)

	got, err := docx.Extract(out)
	require.NoError(t, err)
	assert.Contains(t, got.Paragraphs, "Общее - 0")
	require.Len(t, got.Tables, 1)
	require.Len(t, got.Tables[0], 1, "header row only")
	assert.Len(t, got.Tables[0][0], 5)
}

func TestRenderRowsAndCountsFollowSelection(t *testing.T) {
	t.Parallel()

	bodies := []cus.RegulatoryBody{
		{Code: "1803", Name: "Инспекция 3", Region: "18", Type: "ФНС", Authority: cus.Authority{INN: "3"}},
		{Code: "0018", Name: "Отделение", Region: "118", Type: "ПФР", Authority: cus.Authority{INN: "4"}},
		{Code: "1801", Name: "Инспекция 1", Region: "18", Type: "ФНС", Authority: cus.Authority{INN: "1"}},
		{Code: "7700", Name: "Москва", Region: "77", Type: "ФНС"},
	}
	data := NewData("run-3", "18", generatedAt, bodies)

	out, err := Render(data, "cusreport")
	require.NoError(t, err)
	got, err := docx.Extract(out)
	require.NoError(t, err)

	table := got.Tables[0]
	require.Len(t, table, len(data.Bodies)+1)
	for _, row := range table {
		assert.Len(t, row, 5)
	}
	assert.Equal(t, []string{"1", "ПФР", "0018", "Отделение", "4"}, table[1])
	assert.Equal(t, []string{"2", "ФНС", "1801", "Инспекция 1", "1"}, table[2])
	assert.Equal(t, []string{"3", "ФНС", "1803", "Инспекция 3", "3"}, table[3])
	assert.Equal(t, []string{"ПФР - 1", "ФНС - 2"}, data.Preamble()[3:])
}

func TestColumnLayout(t *testing.T) {
	t.Parallel()

	assert.Len(t, Headers, 5)
	assert.Equal(t, len(Headers), len(ColumnWidths))
}
