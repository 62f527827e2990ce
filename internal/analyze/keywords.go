package analyze

// Keyword tables for the sentiment heuristic. Matching is substring
// matching on lowercased text, so short entries also hit inside longer
// words.
var positiveKeywords = []string{
	"excellent", "great", "good", "helpful", "useful", "essential",
	"recommended", "worth", "amazing", "fantastic", "perfect", "love",
	"enjoy", "informative", "educational", "clear", "easy", "convenient",
	"well-made", "professional", "comprehensive", "detailed", "insightful",
	"wonderful", "outstanding", "superb", "brilliant", "impressive",
	"thank", "thanks", "nice", "better", "best",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "horrible", "useless", "waste",
	"disappointing", "confusing", "complicated", "difficult", "hard",
	"annoying", "frustrating", "broken", "not working", "missing",
	"outdated", "poor", "weak", "limited", "inadequate", "overpriced",
	"expensive", "rip-off", "scam", "trash", "garbage", "rubbish",
	"disaster", "nightmare", "dreadful", "miserable", "no",
	"problem", "issue", "trouble",
}

var audioGuideTerms = []string{
	"audio guide", "audioguide", "audio tour", "audio commentary",
	"guided tour", "audio device", "headphones", "audio app",
	"audio recording", "audio explanation", "audio description",
	"audio", "guide", "tour",
}

// museumMappings maps lowercase text fragments to canonical museum
// names. Order matters: the first fragment found in a post wins.
var museumMappings = []struct {
	fragment string
	name     string
}{
	{"prado", "Museo del Prado"},
	{"vatican", "Vatican Museums"},
	{"louvre", "Louvre Museum"},
	{"british museum", "British Museum"},
	{"metropolitan", "Metropolitan Museum of Art"},
	{"uffizi", "Uffizi Gallery"},
	{"tate", "Tate Modern"},
	{"alhambra", "Alhambra"},
	{"colosseum", "Colosseum"},
	{"pompeii", "Pompeii"},
	{"herculaneum", "Herculaneum"},
	{"borghese", "Borghese Gallery"},
	{"medici", "Medici Riccardi Palace"},
	{"tower of london", "Tower of London"},
	{"edinburgh castle", "Edinburgh Castle"},
	{"ostia", "Ostia Antica"},
	{"accademia", "Accademia Gallery"},
	{"bargello", "Bargello Museum"},
	{"duomo", "Duomo Museum"},
	{"milan duomo", "Milan Duomo"},
	{"florence", "Florence Museums"},
	{"olympia", "Olympia"},
	{"budapest", "Budapest Museums"},
}

// themeRules maps text fragments to theme labels. A text can contribute
// many themes; each rule fires at most once per text.
var themeRules = []struct {
	theme string
	terms []string
}{
	{"mobile app", []string{"app", "application", "smartphone"}},
	{"physical device", []string{"device", "headphones", "rent"}},
	{"free service", []string{"free", "no cost", "included"}},
	{"paid service", []string{"paid", "cost", "expensive", "rent"}},
	{"multilingual", []string{"language", "translation", "english"}},
	{"complexity issues", []string{"complicated", "difficult", "confusing"}},
	{"availability issues", []string{"missing", "not available", "no longer"}},
	{"rick steves guide", []string{"rick steves", "rs"}},
	{"digital download", []string{"download", "online"}},
	{"advance booking", []string{"reservation", "advance", "book"}},
	{"audio quality", []string{"quality", "sound", "audio"}},
	{"time management", []string{"time", "duration", "length"}},
	{"guided tours", []string{"guided tour", "tour guide"}},
	{"skip the line", []string{"skip the line", "skip line"}},
}
