package disease

// Detail is the static advisory text attached to a scored outcome.
type Detail struct {
	Treatment   string `json:"treatment"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// details maps every vocabulary entry to its advisory text. Completeness
// against the bucket vocabularies is asserted in NewScorer.
var details = map[string]Detail{
	"healthy": {
		Treatment:   "No treatment needed. Continue regular maintenance.",
		Description: "Plant appears healthy with no visible disease symptoms.",
		Severity:    "None",
	},
	"early_blight": {
		Treatment:   "Apply copper-based fungicide. Remove affected leaves. Improve air circulation.",
		Description: "Fungal disease causing dark spots with concentric rings on older leaves.",
		Severity:    "Moderate",
	},
	"late_blight": {
		Treatment:   "Apply chlorothalonil fungicide immediately. Remove infected plants if severe.",
		Description: "Serious fungal disease causing water-soaked lesions on leaves and stems.",
		Severity:    "High",
	},
	"leaf_spot": {
		Treatment:   "Apply organic neem oil spray. Remove infected leaves. Avoid overhead watering.",
		Description: "Bacterial or fungal spots on leaves, often circular with yellow halos.",
		Severity:    "Low to Moderate",
	},
	"powdery_mildew": {
		Treatment:   "Apply sulfur or potassium bicarbonate spray. Increase sunlight exposure.",
		Description: "White powdery coating on leaves caused by fungal infection.",
		Severity:    "Moderate",
	},
	"bacterial_wilt": {
		Treatment:   "Remove and destroy infected plants. Rotate crops. Improve drainage.",
		Description: "Bacterial infection causing rapid wilting and plant death.",
		Severity:    "High",
	},
	"mosaic_virus": {
		Treatment:   "No cure available. Remove infected plants. Control aphid vectors.",
		Description: "Viral disease causing mottled yellow and green patterns on leaves.",
		Severity:    "High",
	},
	"rust": {
		Treatment:   "Apply appropriate fungicide. Remove infected leaves. Improve air flow.",
		Description: "Fungal disease causing orange or brown pustules on leaves.",
		Severity:    "Moderate",
	},
	"anthracnose": {
		Treatment:   "Apply copper fungicide. Practice crop rotation. Remove plant debris.",
		Description: "Fungal disease causing dark sunken lesions on fruits and leaves.",
		Severity:    "Moderate to High",
	},
	"septoria_leaf_spot": {
		Treatment:   "Apply fungicide containing chlorothalonil. Mulch around plants.",
		Description: "Fungal disease with small circular spots with gray centers.",
		Severity:    "Moderate",
	},
}

// unknownDetail is returned by Info for names outside the vocabulary.
var unknownDetail = Detail{
	Treatment:   "Consult agricultural expert",
	Description: "Unknown disease",
	Severity:    "Unknown",
}
