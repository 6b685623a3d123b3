package labelcmd

// TSPL at 203 dpi: SIZE and GAP take millimetres, everything else is dots
// (8 dots/mm, so the 50 mm label is 400 x 400 dots).
var tspl = profile{
	terminator: "\r\n",
	setup: []string{
		"SIZE 50 mm, 50 mm",
		"GAP 2 mm, 0 mm",
		"DIRECTION 1",
		"REFERENCE 0,0",
		"SET PEEL OFF",
		"SET CUTTER OFF",
		"SET TEAR ON",
	},
	clear:    "CLS",
	border:   "BOX 16,16,384,384,2",
	commit:   "PRINT 1,1",
	reserved: `"`,
	rows: map[Symbology]row{
		// x, y, "type", height, human readable, rotation, narrow, wide, data
		Barcode: {
			symbol: `BARCODE 40,110,"128",120,1,0,2,2,"%s"`,
		},
		// x, y, ecc level, cell width, mode, rotation, data
		QRCode: {
			symbol: `QRCODE 116,60,M,8,A,0,"%s"`,
			text:   `TEXT 116,260,"3",0,1,1,"%s"`,
		},
		// x, y, box width, box height, x<module>, rows, cols, data
		DataMatrix: {
			symbol: `DMATRIX 120,60,160,160,x8,18,18,"%s"`,
			text:   `TEXT 120,260,"3",0,1,1,"%s"`,
		},
	},
}
