package merkle

// ISO 3166-1 numeric codes for the countries referenced by the shipped
// nationality groups.
const (
	AUT = 40
	BEL = 56
	BGR = 100
	HRV = 191
	CYP = 196
	CZE = 203
	DNK = 208
	EST = 233
	FIN = 246
	FRA = 250
	DEU = 276
	GRC = 300
	HUN = 348
	IRL = 372
	ITA = 380
	LVA = 428
	LTU = 440
	LUX = 442
	MLT = 470
	NLD = 528
	POL = 616
	PRT = 620
	ROU = 642
	SVK = 703
	SVN = 705
	ESP = 724
	SWE = 752

	CHE = 756
	NOR = 578
	ISL = 352
	LIE = 438

	ARG = 32
	BOL = 68
	BRA = 76
	CHL = 152
	COL = 170
	CRI = 188
	CUB = 192
	DOM = 214
	ECU = 218
	SLV = 222
	GTM = 320
	HND = 340
	MEX = 484
	NIC = 558
	PAN = 591
	PRY = 600
	PER = 604
	URY = 858
	VEN = 862
)

var euMembers = []int64{
	AUT, BEL, BGR, HRV, CYP, CZE, DNK, EST, FIN, FRA,
	DEU, GRC, HUN, IRL, ITA, LVA, LTU, LUX, MLT, NLD,
	POL, PRT, ROU, SVK, SVN, ESP, SWE,
}

var schengenMembers = []int64{
	AUT, BEL, BGR, HRV, CZE, DNK, EST, FIN, FRA,
	DEU, GRC, HUN, ITA, LVA, LTU, LUX, MLT, NLD,
	POL, PRT, ROU, SVK, SVN, ESP, SWE,
	CHE, NOR, ISL, LIE,
}

var latamMembers = []int64{
	ARG, BOL, BRA, CHL, COL, CRI, CUB, DOM, ECU, SLV,
	GTM, HND, MEX, NIC, PAN, PRY, PER, URY, VEN,
}

// Groups maps a group name to its member nationality codes. Order inside a
// group is fixed so every build yields the same tree.
var Groups = map[string][]int64{
	"EU":       euMembers,
	"SCHENGEN": schengenMembers,
	"LATAM":    latamMembers,
}
