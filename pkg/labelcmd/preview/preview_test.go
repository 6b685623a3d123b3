package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelprint/pkg/labelcmd"
)

func TestParseTSPL_Sample(t *testing.T) {
	src := `SIZE 100 mm, 60 mm
GAP 2 mm, 0 mm
DIRECTION 1
REFERENCE 0,0
CLS
TEXT 50,50,"3",0,1,1,"Hello World"
BARCODE 50,150,"128",60,1,0,2,2,"12345678"
QRCODE 250,50,H,4,A,0,"https://example.com"
BOX 40,40,450,250,2
REVERSE 10,20,30,40
PRINT 1,1`

	label := ParseTSPL(src)
	assert.Equal(t, 378.0, label.Width)
	assert.Equal(t, 226.8, label.Height)
	require.Len(t, label.Elements, 5)

	assert.Equal(t, Element{Type: ElementText, X: 50, Y: 50, Text: "Hello World", FontSize: 12}, label.Elements[0])
	assert.Equal(t, Element{Type: ElementBarcode, X: 50, Y: 150, Height: 60, Data: "12345678", BarcodeType: "128"}, label.Elements[1])
	assert.Equal(t, Element{Type: ElementQRCode, X: 250, Y: 50, Size: 40, Data: "https://example.com"}, label.Elements[2])
	assert.Equal(t, Element{Type: ElementBox, X: 40, Y: 40, Width: 410, Height: 210, Thickness: 2}, label.Elements[3])
	assert.Equal(t, Element{Type: ElementReverse, X: 10, Y: 20, Width: 30, Height: 40}, label.Elements[4])
}

func TestParseTSPL_Defaults(t *testing.T) {
	label := ParseTSPL("CLS\n\nBOX 0,0,10,10\nUNKNOWN 1,2\n")
	assert.Equal(t, float64(DefaultWidth), label.Width)
	assert.Equal(t, float64(DefaultHeight), label.Height)
	require.Len(t, label.Elements, 1)
	assert.Equal(t, 1, label.Elements[0].Thickness)
}

func TestParseTSPL_TextScale(t *testing.T) {
	label := ParseTSPL(`TEXT 1,2,"3",90,3,3,"BIG"`)
	require.Len(t, label.Elements, 1)
	assert.Equal(t, 24, label.Elements[0].FontSize)
	assert.Equal(t, 90, label.Elements[0].Rotation)
}

func TestParseTSPL_EncoderOutput(t *testing.T) {
	doc, err := labelcmd.Encode("PA00001", labelcmd.DataMatrix, labelcmd.DialectTSPL)
	require.NoError(t, err)

	label := ParseTSPL(doc.String())
	assert.Equal(t, 189.0, label.Width)
	require.Len(t, label.Elements, 3)
	assert.Equal(t, ElementBox, label.Elements[0].Type)
	assert.Equal(t, Element{Type: ElementDataMatrix, X: 120, Y: 60, Width: 160, Height: 160, Data: "PA00001"}, label.Elements[1])
	assert.Equal(t, "PA00001", label.Elements[2].Text)
}

func TestParseTSPL_SizeWithGluedUnits(t *testing.T) {
	label := ParseTSPL("SIZE 50mm, 30mm\r\nCLS\r\n")
	assert.InDelta(t, 50*PixelsPerMM, label.Width, 0.01)
	assert.InDelta(t, 30*PixelsPerMM, label.Height, 0.01)

	label = ParseTSPL("SIZE 40.5 mm, 25 mm\r\n")
	assert.InDelta(t, 40.5*PixelsPerMM, label.Width, 0.01)
	assert.InDelta(t, 25*PixelsPerMM, label.Height, 0.01)
}

func TestLeadingNumber(t *testing.T) {
	assert.Equal(t, "50", leadingNumber("50mm"))
	assert.Equal(t, "-2.5", leadingNumber("-2.5dots"))
	assert.Equal(t, "", leadingNumber("mm"))
	assert.Equal(t, "", leadingNumber("-"))
	assert.Equal(t, 12, atoi("12x"))
	assert.Equal(t, 0.0, atof("abc"))
}
