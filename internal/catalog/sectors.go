package catalog

// Sector labels per ticker. Spanish markets share one table since the
// mid-cap universe trades on the same exchange as the IBEX 35.

var sectorsSpain = map[string]string{
	"ITX.MC": "Retail", "FER.MC": "Construcción", "ACS.MC": "Construcción",
	"IBE.MC": "Utilities", "ENG.MC": "Utilities", "RED.MC": "Utilities", "NTGY.MC": "Utilities",
	"SAN.MC": "Banca", "BBVA.MC": "Banca", "CABK.MC": "Banca", "SAB.MC": "Banca",
	"BKT.MC": "Banca", "UNI.MC": "Banca",
	"TEF.MC": "Telecomunicaciones", "CLNX.MC": "Telecomunicaciones",
	"REP.MC": "Energía", "SLR.MC": "Energía", "ANA.MC": "Energía",
	"AENA.MC": "Transporte", "IAG.MC": "Transporte", "REN.MC": "Transporte",
	"AMS.MC": "Tecnología", "IDR.MC": "Tecnología",
	"GRF.MC": "Farmacia", "PHM.MC": "Farmacia",
	"MAP.MC": "Seguros", "MEL.MC": "Turismo",
	"MRL.MC": "Inmobiliario", "COL.MC": "Inmobiliario",
	"SCYR.MC": "Construcción", "SGRE.MC": "Industrial",
	"ACX.MC": "Industrial", "FDR.MC": "Industrial", "VIS.MC": "Industrial",
	"LOG.MC": "Logística",
	// Continuous market additions
	"ELE.MC": "Utilities", "EBRO.MC": "Alimentación", "GCO.MC": "Automoción",
	"ALM.MC": "Farmacia", "VID.MC": "Industrial", "CIE.MC": "Automoción",
	"TRE.MC": "Construcción", "CAF.MC": "Industrial", "FCC.MC": "Construcción",
	"PSG.MC": "Servicios", "ENC.MC": "Utilities", "NHH.MC": "Turismo",
	"APAM.MC": "Servicios", "TUB.MC": "Industrial", "FAE.MC": "Farmacia",
	"ZOT.MC": "Industrial", "NXT.MC": "Inmobiliario", "MVC.MC": "Industrial",
	"DIA.MC": "Retail", "PRISA.MC": "Media", "BME.MC": "Financiero",
	"OHL.MC": "Construcción", "AZK.MC": "Industrial", "LGT.MC": "Industrial",
}

var sectorsNasdaq = map[string]string{
	"AAPL": "Technology", "MSFT": "Technology", "NVDA": "Technology",
	"GOOGL": "Technology", "AMZN": "Consumer", "META": "Technology",
	"TSLA": "Automotive", "AVGO": "Technology", "COST": "Retail",
	"NFLX": "Media", "AMD": "Technology", "ADBE": "Technology",
	"CSCO": "Technology", "INTC": "Technology", "CMCSA": "Media",
	"PEP": "Consumer", "QCOM": "Technology", "TXN": "Technology",
	"INTU": "Technology", "AMGN": "Healthcare", "AMAT": "Technology",
	"ISRG": "Healthcare", "BKNG": "Travel", "HON": "Industrial",
	"VRTX": "Healthcare",
}

var sectorsSP500 = map[string]string{
	"AAPL": "Technology", "MSFT": "Technology", "NVDA": "Technology",
	"GOOGL": "Technology", "AMZN": "Consumer", "META": "Technology",
	"BRK-B": "Financial", "TSLA": "Automotive", "LLY": "Healthcare",
	"V": "Financial", "UNH": "Healthcare", "XOM": "Energy",
	"MA": "Financial", "JNJ": "Healthcare", "PG": "Consumer",
	"AVGO": "Technology", "JPM": "Financial", "HD": "Retail",
	"CVX": "Energy", "ABBV": "Healthcare", "MRK": "Healthcare",
	"COST": "Retail", "KO": "Consumer", "ORCL": "Technology",
	"WMT": "Retail",
}
