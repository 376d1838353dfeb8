package catalog

// Symbol universes. These lists are curated by hand: delisted tickers
// removed, duplicates across markets intentional (a company can appear
// in both NASDAQ and S&P 500 views).

var symbolsIbex35 = map[string]string{
	"ITX.MC":  "Inditex",
	"IBE.MC":  "Iberdrola",
	"SAN.MC":  "Banco Santander",
	"BBVA.MC": "BBVA",
	"TEF.MC":  "Telefónica",
	"REP.MC":  "Repsol",
	"CABK.MC": "CaixaBank",
	"ENG.MC":  "Enagás",
	"FER.MC":  "Ferrovial",
	"ACS.MC":  "ACS",
	"AENA.MC": "Aena",
	"AMS.MC":  "Amadeus",
	"ANA.MC":  "Acciona",
	"CLNX.MC": "Cellnex",
	"IAG.MC":  "IAG",
	"GRF.MC":  "Grifols",
	"MAP.MC":  "Mapfre",
	"MEL.MC":  "Meliá Hotels",
	"MRL.MC":  "Merlin Properties",
	"RED.MC":  "Redeia",
	"SAB.MC":  "Banco Sabadell",
	"SCYR.MC": "Sacyr",
	"SGRE.MC": "Siemens Gamesa",
	"UNI.MC":  "Unicaja",
	"ACX.MC":  "Acerinox",
	"BKT.MC":  "Bankinter",
	"COL.MC":  "Inmobiliaria Colonial",
	"FDR.MC":  "Fluidra",
	"IDR.MC":  "Indra",
	"LOG.MC":  "Logista",
	"NTGY.MC": "Naturgy",
	"PHM.MC":  "PharmaMar",
	"REN.MC":  "Talgo",
	"SLR.MC":  "Solaria",
	"VIS.MC":  "Viscofan",
}

var symbolsNasdaq25 = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"NVDA":  "NVIDIA",
	"GOOGL": "Alphabet (Google)",
	"AMZN":  "Amazon",
	"META":  "Meta Platforms",
	"TSLA":  "Tesla",
	"AVGO":  "Broadcom",
	"COST":  "Costco",
	"NFLX":  "Netflix",
	"AMD":   "AMD",
	"ADBE":  "Adobe",
	"CSCO":  "Cisco",
	"INTC":  "Intel",
	"CMCSA": "Comcast",
	"PEP":   "PepsiCo",
	"QCOM":  "Qualcomm",
	"TXN":   "Texas Instruments",
	"INTU":  "Intuit",
	"AMGN":  "Amgen",
	"AMAT":  "Applied Materials",
	"ISRG":  "Intuitive Surgical",
	"BKNG":  "Booking Holdings",
	"HON":   "Honeywell",
	"VRTX":  "Vertex Pharmaceuticals",
}

var symbolsSP500Top25 = map[string]string{
	"AAPL":  "Apple",
	"MSFT":  "Microsoft",
	"NVDA":  "NVIDIA",
	"GOOGL": "Alphabet",
	"AMZN":  "Amazon",
	"META":  "Meta Platforms",
	"BRK-B": "Berkshire Hathaway",
	"TSLA":  "Tesla",
	"LLY":   "Eli Lilly",
	"V":     "Visa",
	"UNH":   "UnitedHealth",
	"XOM":   "Exxon Mobil",
	"MA":    "Mastercard",
	"JNJ":   "Johnson & Johnson",
	"PG":    "Procter & Gamble",
	"AVGO":  "Broadcom",
	"JPM":   "JPMorgan Chase",
	"HD":    "Home Depot",
	"CVX":   "Chevron",
	"ABBV":  "AbbVie",
	"MRK":   "Merck",
	"COST":  "Costco",
	"KO":    "Coca-Cola",
	"ORCL":  "Oracle",
	"WMT":   "Walmart",
}

// Spain continuous market: largest caps not already in the IBEX 35.
var symbolsSpainMidCap = map[string]string{
	"ELE.MC":   "Endesa",
	"EBRO.MC":  "Ebro Foods",
	"GCO.MC":   "Gestamp",
	"ALM.MC":   "Almirall",
	"VID.MC":   "Vidrala",
	"CIE.MC":   "CIE Automotive",
	"TRE.MC":   "Técnicas Reunidas",
	"CAF.MC":   "CAF",
	"FCC.MC":   "FCC",
	"PSG.MC":   "Prosegur Cash",
	"ENC.MC":   "Ence",
	"NHH.MC":   "NH Hotel Group",
	"APAM.MC":  "Applus",
	"TUB.MC":   "Tubacex",
	"FAE.MC":   "Faes Farma",
	"ZOT.MC":   "Zardoya Otis",
	"NXT.MC":   "Neinor Homes",
	"MVC.MC":   "Miquel y Costas",
	"ACS.MC":   "Construcciones ACS",
	"DIA.MC":   "DIA",
	"PRISA.MC": "Prisa",
	"BME.MC":   "BME",
	"OHL.MC":   "OHL",
	"AZK.MC":   "Azkoyen",
	"LGT.MC":   "Lingotes Especiales",
}
