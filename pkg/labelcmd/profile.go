package labelcmd

import "fmt"

// row is one (dialect, symbology) layout. symbol and text are format strings
// receiving the code once; text is empty when symbol prints the code inline.
type row struct {
	symbol string
	text   string
}

// profile is the fixed template of one dialect.
type profile struct {
	terminator string
	setup      []string
	clear      string
	border     string
	commit     string
	// reserved characters that break field data when embedded unescaped
	reserved string
	rows     map[Symbology]row
}

var profiles = map[Dialect]*profile{
	DialectTSPL: &tspl,
	DialectZPL:  &zpl,
}

func (p *profile) render(format, code string) string {
	return fmt.Sprintf(format, code)
}
