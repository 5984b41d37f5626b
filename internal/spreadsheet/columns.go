package spreadsheet

// Fixed column mapping used by uploaded registration sheets and generated exports.
const (
	ColPosition   = "የስራ መደብ"
	ColDate       = "የመመዝገቢያ ቀን"
	ColPhone      = "ስልክ/ሞባይል"
	ColLaborID    = "የሰራተኛ መለያ ቁጥር"
	ColFullName   = "ሙሉ ስም"
	ColSourceFile = "የተመዘገበበት ፋይል"
)

// RequiredColumns must be present in every upload after header normalisation.
var RequiredColumns = []string{ColPosition, ColPhone, ColFullName}

// ExportColumns is the header row of generated exports, in order.
var ExportColumns = []string{ColFullName, ColPhone, ColLaborID, ColPosition, ColDate, ColSourceFile}
