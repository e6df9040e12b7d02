package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{{"id", "p1"}, {"name", `Mug "Classic", 12oz`}, {"revenue", 1245.8}, {"unitsSold", 3}, {"inStock", true}, {"note", nil}},
		{{"id", "p2"}, {"name", "Lamp\nwith cord"}, {"revenue", 0.1}, {"unitsSold", 0}, {"inStock", false}, {"note", "plain"}},
	}
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{" leading space", " leading space"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
		{"two\nlines", "\"two\nlines\""},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, EscapeCSV(tt.in), tt.in)
	}
}

func TestCSV_HeaderFromFirstRow(t *testing.T) {
	out := string(CSV(sampleRows()))

	lines := strings.SplitN(out, "\n", 2)
	require.Equal(t, "id,name,revenue,unitsSold,inStock,note", lines[0])
	require.True(t, strings.HasPrefix(lines[1], `p1,"Mug ""Classic"", 12oz",1245.8,3,true,`))
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestCSV_Empty(t *testing.T) {
	require.Empty(t, CSV(nil))
}

func TestRowMarshalJSON_KeepsColumnOrder(t *testing.T) {
	b, err := json.Marshal(Row{{"z", 1}, {"a", "x"}, {"m", nil}})
	require.NoError(t, err)
	require.Equal(t, `{"z":1,"a":"x","m":null}`, string(b))
}

func TestJSON_Envelope(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b, err := JSON("products", at, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"products","generatedAt":"2025-03-01T12:00:00Z","rows":[]}`, string(b))
}

func TestCSVAndJSONRoundTrip(t *testing.T) {
	rows := sampleRows()
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	_, csvBody, err := Render("products", FormatCSV, at, rows)
	require.NoError(t, err)
	_, jsonBody, err := Render("products", FormatJSON, at, rows)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(csvBody))).ReadAll()
	require.NoError(t, err)

	var doc struct {
		Rows []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(jsonBody, &doc))

	header, data := records[0], records[1:]
	require.Len(t, data, len(doc.Rows))
	for i, rec := range data {
		require.Len(t, rec, len(header))
		for j, name := range header {
			require.Equal(t, FormatValue(doc.Rows[i][name]), rec[j], "row %d column %s", i, name)
		}
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	_, _, err := Render("orders", "xml", time.Now(), nil)
	require.EqualError(t, err, `unknown export format "xml"`)
}

func TestFormatValue(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	require.Equal(t, "2025-01-02T02:04:05Z", FormatValue(at))
	require.Equal(t, "", FormatValue((*time.Time)(nil)))
	require.Equal(t, "12.5", FormatValue(12.5))
	require.Equal(t, "7", FormatValue(int64(7)))
}
