package conditions

// Condition is a candidate diagnosis described by symptom keys. Flat
// catalogs use Symptoms; weighted catalogs split them into Required and
// Optional.
type Condition struct {
	Name        string
	Symptoms    []string
	Required    []string
	Optional    []string
	Severity    string
	Description string
}

// ProportionalCatalog scores by the share of Symptoms present.
var ProportionalCatalog = []Condition{
	{Name: "Common Cold", Symptoms: []string{"cough", "sore_throat", "runny_nose", "fever", "fatigue"}, Severity: "mild", Description: "Viral upper respiratory infection"},
	{Name: "Influenza (Flu)", Symptoms: []string{"fever", "chills", "muscle_ache", "headache", "cough", "fatigue"}, Severity: "moderate", Description: "Viral infection affecting respiratory system"},
	{Name: "COVID-19", Symptoms: []string{"fever", "cough", "shortness_of_breath", "fatigue", "loss_of_appetite"}, Severity: "moderate", Description: "Coronavirus respiratory infection"},
	{Name: "Gastroenteritis", Symptoms: []string{"nausea", "vomiting", "diarrhea", "abdominal_pain", "fever"}, Severity: "moderate", Description: "Stomach and intestinal infection"},
	{Name: "Migraine", Symptoms: []string{"headache", "nausea", "vision_changes", "dizziness"}, Severity: "moderate", Description: "Severe recurring headache disorder"},
	{Name: "Bronchitis", Symptoms: []string{"cough", "chest_pain", "shortness_of_breath", "fatigue", "fever"}, Severity: "moderate", Description: "Inflammation of bronchial tubes"},
	{Name: "Sinusitis", Symptoms: []string{"headache", "runny_nose", "fever", "facial_pain"}, Severity: "mild", Description: "Inflammation of sinus cavities"},
	{Name: "Food Poisoning", Symptoms: []string{"nausea", "vomiting", "diarrhea", "abdominal_pain", "fever"}, Severity: "moderate", Description: "Foodborne bacterial/viral infection"},
	{Name: "Allergic Reaction", Symptoms: []string{"rash", "itching", "swelling", "runny_nose", "eye_pain"}, Severity: "mild", Description: "Immune system response to allergen"},
	{Name: "Anxiety Disorder", Symptoms: []string{"anxiety", "sweating", "palpitations", "shortness_of_breath", "dizziness"}, Severity: "moderate", Description: "Mental health condition causing excessive worry"},
	{Name: "Tension Headache", Symptoms: []string{"headache", "muscle_ache", "fatigue"}, Severity: "mild", Description: "Most common type of headache"},
	{Name: "Dehydration", Symptoms: []string{"dizziness", "fatigue", "headache", "dry_skin"}, Severity: "moderate", Description: "Insufficient fluid intake"},
}

// WeightedCatalog scores required symptoms at 70% and optional ones at 30%.
var WeightedCatalog = []Condition{
	{
		Name:        "Common Cold",
		Required:    []string{"cough", "runny_nose"},
		Optional:    []string{"fever", "fatigue", "sore_throat", "headache"},
		Severity:    "mild",
		Description: "A viral upper respiratory tract infection",
	},
	{
		Name:        "Influenza (Flu)",
		Required:    []string{"fever", "muscle_ache"},
		Optional:    []string{"cough", "fatigue", "chills", "headache", "sore_throat"},
		Severity:    "moderate",
		Description: "A viral infection affecting the respiratory system",
	},
	{
		Name:        "COVID-19",
		Required:    []string{"fever", "cough"},
		Optional:    []string{"fatigue", "shortness_of_breath", "loss_of_taste_or_smell", "muscle_ache", "headache"},
		Severity:    "moderate_to_severe",
		Description: "Coronavirus disease caused by SARS-CoV-2",
	},
	{
		Name:        "Gastroenteritis",
		Required:    []string{"nausea", "diarrhea"},
		Optional:    []string{"vomiting", "abdominal_pain", "fever", "fatigue"},
		Severity:    "moderate",
		Description: "Inflammation of the stomach and intestines",
	},
	{
		Name:        "Migraine",
		Required:    []string{"headache"},
		Optional:    []string{"nausea", "sensitivity_to_light", "sensitivity_to_sound", "vomiting", "vision_changes"},
		Severity:    "moderate",
		Description: "A neurological condition causing severe headaches",
	},
	{
		Name:        "Bronchitis",
		Required:    []string{"cough", "chest_pain"},
		Optional:    []string{"fatigue", "shortness_of_breath", "wheezing", "fever"},
		Severity:    "moderate",
		Description: "Inflammation of the bronchial tubes",
	},
	{
		Name:        "Sinusitis",
		Required:    []string{"headache", "runny_nose"},
		Optional:    []string{"facial_pain", "cough", "fever", "loss_of_taste_or_smell"},
		Severity:    "mild_to_moderate",
		Description: "Inflammation of the sinuses",
	},
	{
		Name:        "Food Poisoning",
		Required:    []string{"nausea", "vomiting", "diarrhea"},
		Optional:    []string{"abdominal_pain", "fever", "weakness"},
		Severity:    "moderate",
		Description: "Illness caused by consuming contaminated food",
	},
	{
		Name:        "Allergic Reaction",
		Required:    []string{"rash", "itching"},
		Optional:    []string{"swelling", "shortness_of_breath", "runny_nose", "sneezing"},
		Severity:    "mild_to_severe",
		Description: "Immune system response to an allergen",
	},
	{
		Name:        "Anxiety Disorder",
		Required:    []string{"anxiety"},
		Optional:    []string{"rapid_heartbeat", "shortness_of_breath", "sweating", "dizziness", "insomnia"},
		Severity:    "mild_to_moderate",
		Description: "Mental health condition characterized by excessive worry",
	},
	{
		Name:        "Tension Headache",
		Required:    []string{"headache"},
		Optional:    []string{"neck_pain", "fatigue", "difficulty_concentrating"},
		Severity:    "mild",
		Description: "The most common type of headache caused by muscle tension",
	},
	{
		Name:        "Dehydration",
		Required:    []string{"dizziness", "fatigue"},
		Optional:    []string{"dry_mouth", "thirst", "weakness", "confusion"},
		Severity:    "mild_to_moderate",
		Description: "Condition resulting from excessive loss of body fluids",
	},
}
