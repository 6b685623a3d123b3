package labelcmd

// ZPL in dots at 203 dpi (8 dots/mm).
var zpl = profile{
	terminator: "\n",
	setup: []string{
		"^XA",
		"^PW400",
		"^LL400",
		"^LH0,0",
		"^PON",
		"^MMT",
		"^PQ1,0,1,Y",
	},
	clear:    "^MCY",
	border:   "^FO16,16^GB368,368,2^FS",
	commit:   "^XZ",
	reserved: "^~",
	rows: map[Symbology]row{
		// ^BY module width, ratio, height; ^BC orientation, height, interpretation line, above, check digit
		Barcode: {
			symbol: "^FO60,110^BY2,2,120^BCN,120,Y,N,N^FD%s^FS",
		},
		// ^BQ orientation, model, magnification; field data carries ecc level M and automatic input A
		QRCode: {
			symbol: "^FO116,60^BQN,2,8^FDMA,%s^FS",
			text:   "^FO116,260^A0N,28,28^FD%s^FS",
		},
		// ^BX orientation, module height, quality, columns, rows
		DataMatrix: {
			symbol: "^FO120,60^BXN,8,200,18,18^FD%s^FS",
			text:   "^FO120,260^A0N,28,28^FD%s^FS",
		},
	},
}
