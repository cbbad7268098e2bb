package config

// Band represents one core geographic band of the metropolitan region
type Band struct {
	Name    string
	Keyword string
	// Localities is ordered nearest-to-farthest from the urban core; the
	// index of a match is the band-local distance.
	Localities []string
	// DefaultDistance is used when only the region keyword matched
	DefaultDistance int
}

// NoMatchDistance is returned when an area matches no band at all
const NoMatchDistance = 60

// Bands lists the geographic bands in fixed priority order. An area naming
// localities from several bands scores against the earliest band here.
var Bands = []Band{
	{
		Name:    "south",
		Keyword: "south",
		Localities: []string{
			"colaba",
			"cuffe parade",
			"churchgate",
			"fort",
			"marine lines",
			"nariman point",
			"malabar hill",
			"grant road",
			"tardeo",
			"mahalaxmi",
			"worli",
			"lower parel",
			"parel",
			"dadar",
			"matunga",
			"sion",
		},
		DefaultDistance: 0,
	},
	{
		Name:    "western",
		Keyword: "western",
		Localities: []string{
			"bandra",
			// "khar west", not "khar": bare "khar" would also match
			// Kharghar, which belongs to the navi band
			"khar west",
			"santacruz",
			"vile parle",
			"andheri",
			"jogeshwari",
			"goregaon",
			"malad",
			"kandivali",
			"borivali",
			"dahisar",
			"mira road",
			"bhayandar",
			"vasai",
			"virar",
		},
		DefaultDistance: 50,
	},
	{
		Name:    "central",
		Keyword: "central",
		Localities: []string{
			"kurla",
			"ghatkopar",
			"vikhroli",
			"bhandup",
			"mulund",
			"thane",
			"dombivli",
			"kalyan",
			"ulhasnagar",
			"ambernath",
			"badlapur",
		},
		DefaultDistance: 50,
	},
	{
		Name:    "harbour",
		Keyword: "harbour",
		Localities: []string{
			"sewri",
			"wadala",
			"chembur",
			"govandi",
			"mankhurd",
		},
		DefaultDistance: 30,
	},
	{
		Name:    "navi",
		Keyword: "navi",
		Localities: []string{
			"vashi",
			"sanpada",
			"juinagar",
			"nerul",
			"seawoods",
			"belapur",
			"kharghar",
			"kamothe",
			"panvel",
			"airoli",
			"ghansoli",
			"koparkhairane",
		},
		DefaultDistance: 40,
	},
}

// GetBandByName returns a band configuration by name
func GetBandByName(name string) *Band {
	for i := range Bands {
		if Bands[i].Name == name {
			return &Bands[i]
		}
	}
	return nil
}

// GetBandNames returns the band names in priority order
func GetBandNames() []string {
	names := make([]string, len(Bands))
	for i, band := range Bands {
		names[i] = band.Name
	}
	return names
}
