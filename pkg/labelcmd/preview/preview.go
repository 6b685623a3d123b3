// Package preview turns TSPL command text into positioned elements suitable
// for an on-screen mock-up of the label.
package preview

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PixelsPerMM converts label millimetres to 96 dpi screen pixels.
const PixelsPerMM = 3.78

// Default canvas used when the input has no SIZE command.
const (
	DefaultWidth  = 400
	DefaultHeight = 240
)

// ElementType names a drawable element.
type ElementType string

const (
	ElementText       ElementType = "text"
	ElementBarcode    ElementType = "barcode"
	ElementQRCode     ElementType = "qrcode"
	ElementDataMatrix ElementType = "datamatrix"
	ElementBox        ElementType = "box"
	ElementReverse    ElementType = "reverse"
)

// Element is one drawable item. Coordinates are printer dots.
type Element struct {
	Type        ElementType `json:"type"`
	X           int         `json:"x"`
	Y           int         `json:"y"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	Size        int         `json:"size,omitempty"`
	Rotation    int         `json:"rotation,omitempty"`
	Thickness   int         `json:"thickness,omitempty"`
	FontSize    int         `json:"fontSize,omitempty"`
	Text        string      `json:"text,omitempty"`
	Data        string      `json:"data,omitempty"`
	BarcodeType string      `json:"barcodeType,omitempty"`
}

// Label is the parsed preview.
type Label struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Elements []Element `json:"elements"`
}

var (
	splitRe  = regexp.MustCompile(`[\s,]+`)
	quotedRe = regexp.MustCompile(`"([^"]*)"`)
)

// ParseTSPL parses TSPL text. Unknown commands and malformed numbers are
// tolerated: numbers that fail to parse read as zero.
func ParseTSPL(text string) Label {
	label := Label{Width: DefaultWidth, Height: DefaultHeight, Elements: []Element{}}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		parts := splitRe.Split(line, -1)
		arg := func(i int) string {
			if i < len(parts) {
				return parts[i]
			}
			return ""
		}

		switch strings.ToUpper(parts[0]) {
		case "SIZE":
			// SIZE w mm, h mm; the unit may be glued to the number ("50mm")
			h := arg(3)
			if leadingNumber(arg(2)) != "" {
				h = arg(2)
			}
			label.Width = round2(atof(arg(1)) * PixelsPerMM)
			label.Height = round2(atof(h) * PixelsPerMM)

		case "TEXT":
			label.Elements = append(label.Elements, Element{
				Type:     ElementText,
				X:        atoi(arg(1)),
				Y:        atoi(arg(2)),
				Rotation: atoi(arg(4)),
				Text:     lastQuoted(line),
				FontSize: max(12, atoi(arg(6))*8),
			})

		case "BARCODE":
			label.Elements = append(label.Elements, Element{
				Type:        ElementBarcode,
				X:           atoi(arg(1)),
				Y:           atoi(arg(2)),
				BarcodeType: strings.Trim(arg(3), `"`),
				Height:      atoi(arg(4)),
				Data:        lastQuoted(line),
			})

		case "QRCODE":
			label.Elements = append(label.Elements, Element{
				Type: ElementQRCode,
				X:    atoi(arg(1)),
				Y:    atoi(arg(2)),
				Size: atoi(arg(4)) * 10,
				Data: lastQuoted(line),
			})

		case "DMATRIX":
			label.Elements = append(label.Elements, Element{
				Type:   ElementDataMatrix,
				X:      atoi(arg(1)),
				Y:      atoi(arg(2)),
				Width:  atoi(arg(3)),
				Height: atoi(arg(4)),
				Data:   lastQuoted(line),
			})

		case "BOX":
			x1, y1 := atoi(arg(1)), atoi(arg(2))
			thickness := atoi(arg(5))
			if thickness == 0 {
				thickness = 1
			}
			label.Elements = append(label.Elements, Element{
				Type:      ElementBox,
				X:         x1,
				Y:         y1,
				Width:     atoi(arg(3)) - x1,
				Height:    atoi(arg(4)) - y1,
				Thickness: thickness,
			})

		case "REVERSE":
			label.Elements = append(label.Elements, Element{
				Type:   ElementReverse,
				X:      atoi(arg(1)),
				Y:      atoi(arg(2)),
				Width:  atoi(arg(3)),
				Height: atoi(arg(4)),
			})
		}
	}

	return label
}

func lastQuoted(line string) string {
	m := quotedRe.FindAllStringSubmatch(line, -1)
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1][1]
}

// leadingNumber returns the numeric prefix of s: an optional sign, digits
// and an optional fraction.
func leadingNumber(s string) string {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	return s[:end]
}

// atoi reads the leading integer of s; trailing text is ignored.
func atoi(s string) int {
	f := atof(s)
	return int(f)
}

// atof reads the leading number of s, so "50mm" is 50.
func atof(s string) float64 {
	f, _ := strconv.ParseFloat(leadingNumber(s), 64)
	return f
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
