package labelcmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/pkg/sequence"
)

func TestEncode_TSPL(t *testing.T) {
	setup := "SIZE 50 mm, 50 mm\r\n" +
		"GAP 2 mm, 0 mm\r\n" +
		"DIRECTION 1\r\n" +
		"REFERENCE 0,0\r\n" +
		"SET PEEL OFF\r\n" +
		"SET CUTTER OFF\r\n" +
		"SET TEAR ON\r\n" +
		"CLS\r\n" +
		"BOX 16,16,384,384,2\r\n"

	tests := []struct {
		sym  Symbology
		body string
	}{
		{Barcode, "BARCODE 40,110,\"128\",120,1,0,2,2,\"PA00001\"\r\n"},
		{QRCode, "QRCODE 116,60,M,8,A,0,\"PA00001\"\r\n" +
			"TEXT 116,260,\"3\",0,1,1,\"PA00001\"\r\n"},
		{DataMatrix, "DMATRIX 120,60,160,160,x8,18,18,\"PA00001\"\r\n" +
			"TEXT 120,260,\"3\",0,1,1,\"PA00001\"\r\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sym), func(t *testing.T) {
			doc, err := Encode("PA00001", tt.sym, DialectTSPL)
			require.NoError(t, err)
			assert.Equal(t, setup+tt.body+"PRINT 1,1\r\n", doc.String())
		})
	}
}

func TestEncode_ZPL(t *testing.T) {
	setup := "^XA\n^PW400\n^LL400\n^LH0,0\n^PON\n^MMT\n^PQ1,0,1,Y\n^MCY\n^FO16,16^GB368,368,2^FS\n"

	tests := []struct {
		sym  Symbology
		body string
	}{
		{Barcode, "^FO60,110^BY2,2,120^BCN,120,Y,N,N^FDPA00001^FS\n"},
		{QRCode, "^FO116,60^BQN,2,8^FDMA,PA00001^FS\n^FO116,260^A0N,28,28^FDPA00001^FS\n"},
		{DataMatrix, "^FO120,60^BXN,8,200,18,18^FDPA00001^FS\n^FO120,260^A0N,28,28^FDPA00001^FS\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.sym), func(t *testing.T) {
			doc, err := Encode("PA00001", tt.sym, DialectZPL)
			require.NoError(t, err)
			assert.Equal(t, setup+tt.body+"^XZ\n", doc.String())
		})
	}
}

func TestEncode_DataMatrixTablesDiffer(t *testing.T) {
	a, err := Encode("C1", DataMatrix, DialectTSPL)
	require.NoError(t, err)
	b, err := Encode("C1", DataMatrix, DialectZPL)
	require.NoError(t, err)

	symA := a.Lines[a.Index(KindSymbol)].Text
	symB := b.Lines[b.Index(KindSymbol)].Text

	// TSPL: x, y, width, height, module, rows, cols, data
	assert.Len(t, strings.Split(strings.TrimPrefix(symA, "DMATRIX "), ","), 8)
	// ZPL: orientation, module height, quality, columns, rows
	_, params, ok := strings.Cut(symB, "^BX")
	require.True(t, ok)
	params, _, _ = strings.Cut(params, "^FD")
	assert.Equal(t, "N,8,200,18,18", params)
}

func TestEncode_Ordering(t *testing.T) {
	for _, d := range Dialects {
		for _, sym := range Symbologies {
			for _, border := range []bool{true, false} {
				e, err := NewEncoder(d, WithBorder(border))
				require.NoError(t, err)

				doc, err := e.Encode("ORD-0007", sym)
				require.NoError(t, err)

				name := string(d) + "/" + string(sym)
				assert.Equal(t, 1, doc.Count(KindClear), name)
				assert.Equal(t, 1, doc.Count(KindSymbol), name)
				assert.Equal(t, 1, doc.Count(KindCommit), name)
				assert.Less(t, doc.Index(KindClear), doc.Index(KindSymbol), name)
				assert.Less(t, doc.Index(KindSymbol), doc.Index(KindCommit), name)
				assert.Equal(t, len(doc.Lines)-1, doc.Index(KindCommit), name)

				if border {
					assert.Equal(t, 1, doc.Count(KindBorder), name)
					assert.Less(t, doc.Index(KindClear), doc.Index(KindBorder), name)
				} else {
					assert.Equal(t, -1, doc.Index(KindBorder), name)
				}

				// barcode prints its own human readable line
				if sym == Barcode {
					assert.Equal(t, 0, doc.Count(KindText), name)
				} else {
					assert.Equal(t, 1, doc.Count(KindText), name)
				}
			}
		}
	}
}

func TestEncode_Idempotent(t *testing.T) {
	for _, d := range Dialects {
		for _, sym := range Symbologies {
			a, err := Encode("IDEMP1", sym, d)
			require.NoError(t, err)
			b, err := Encode("IDEMP1", sym, d)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(a.Bytes(), b.Bytes()))
		}
	}
}

func TestEncode_EveryLineTerminated(t *testing.T) {
	doc, err := Encode("T1", QRCode, DialectTSPL)
	require.NoError(t, err)

	out := doc.String()
	assert.Equal(t, len(doc.Lines), strings.Count(out, "\r\n"))
	assert.True(t, strings.HasSuffix(out, "PRINT 1,1\r\n"))

	doc, err = Encode("T1", QRCode, DialectZPL)
	require.NoError(t, err)
	assert.NotContains(t, doc.String(), "\r")
	assert.Equal(t, "\n", doc.Terminator())
}

func TestEncode_UnsupportedSymbology(t *testing.T) {
	for _, d := range Dialects {
		doc, err := Encode("PA00001", Symbology("pdf417"), d)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedSymbology)
		assert.Empty(t, doc.Lines)

		var se *UnsupportedSymbologyError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, Symbology("pdf417"), se.Symbology)
	}
}

func TestEncode_UnsupportedDialect(t *testing.T) {
	_, err := Encode("PA00001", Barcode, Dialect("cpcl"))
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	_, err = NewEncoder("")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestEncode_DataIsVerbatim(t *testing.T) {
	doc, err := Encode(`A"B`, Barcode, DialectTSPL)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), `"A"B"`)
}

func TestEncodeBatch_PreservesOrder(t *testing.T) {
	codes, err := sequence.Generate("PA00001", 5)
	require.NoError(t, err)

	for _, d := range Dialects {
		batch, err := EncodeBatch(codes, QRCode, d)
		require.NoError(t, err)
		require.Equal(t, 5, batch.Len())
		assert.Equal(t, codes, batch.Codes())

		stream := batch.String()
		last := -1
		for _, code := range codes {
			i := strings.Index(stream, code)
			require.GreaterOrEqual(t, i, 0)
			assert.Greater(t, i, last)
			last = i
		}

		first := batch.Documents[0]
		assert.Equal(t, first.Count(KindClear)*5, countLines(batch, first.Lines[first.Index(KindClear)].Text))
	}
}

func TestEncodeBatch_Separator(t *testing.T) {
	batch, err := EncodeBatch([]string{"A1", "A2"}, Barcode, DialectTSPL)
	require.NoError(t, err)

	want := batch.Documents[0].String() + "\r\n" + batch.Documents[1].String()
	assert.Equal(t, want, batch.String())
}

func TestEncodeBatch_Empty(t *testing.T) {
	batch, err := EncodeBatch(nil, Barcode, DialectZPL)
	require.NoError(t, err)
	assert.Equal(t, 0, batch.Len())
	assert.Empty(t, batch.Bytes())
}

func TestEncodeBatch_UnsupportedSymbology(t *testing.T) {
	batch, err := EncodeBatch([]string{"A1"}, Symbology("aztec"), DialectZPL)
	assert.ErrorIs(t, err, ErrUnsupportedSymbology)
	assert.Empty(t, batch.Documents)
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{"tspl": DialectTSPL, "A": DialectTSPL, " ZPL ": DialectZPL, "b": DialectZPL} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseDialect("epl")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestParseSymbology(t *testing.T) {
	got, err := ParseSymbology("QRCode")
	require.NoError(t, err)
	assert.Equal(t, QRCode, got)

	_, err = ParseSymbology("ean13")
	assert.ErrorIs(t, err, ErrUnsupportedSymbology)
}

func TestCheckData(t *testing.T) {
	assert.NoError(t, CheckData(DialectTSPL, "PA00001"))
	assert.NoError(t, CheckData(DialectZPL, `PA"1`))

	err := CheckData(DialectTSPL, `PA"1`)
	assert.ErrorIs(t, err, ErrUnsafeData)

	var ue *UnsafeDataError
	require.True(t, errors.As(CheckData(DialectZPL, "A^B"), &ue))
	assert.Equal(t, '^', ue.Char)

	assert.ErrorIs(t, CheckData("x", "A"), ErrUnsupportedDialect)
}

func TestDocument_HasUnsafeData(t *testing.T) {
	doc, err := Encode(`PA"1`, Barcode, DialectTSPL)
	require.NoError(t, err)
	assert.True(t, doc.HasUnsafeData())

	doc, err = Encode(`PA"1`, Barcode, DialectZPL)
	require.NoError(t, err)
	assert.False(t, doc.HasUnsafeData())

	doc, err = Encode("A^B", QRCode, DialectZPL)
	require.NoError(t, err)
	assert.True(t, doc.HasUnsafeData())

	doc, err = Encode("PA00001", DataMatrix, DialectTSPL)
	require.NoError(t, err)
	assert.False(t, doc.HasUnsafeData())
}

func TestDocument_LinesCopy(t *testing.T) {
	doc, err := Encode("PA00001", Barcode, DialectTSPL)
	require.NoError(t, err)
	want := doc.String()

	lines := doc.LinesCopy()
	lines[0].Text = "CHANGED"
	assert.Equal(t, want, doc.String())
}

func TestDialect_FileExtension(t *testing.T) {
	assert.Equal(t, ".prn", DialectTSPL.FileExtension())
	assert.Equal(t, ".zpl", DialectZPL.FileExtension())
}

func countLines(b Batch, text string) int {
	n := 0
	for _, d := range b.Documents {
		for _, l := range d.Lines {
			if l.Text == text {
				n++
			}
		}
	}
	return n
}
