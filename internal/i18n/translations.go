package i18n

var translations = map[string]map[string]string{
	"en": {
		"site.title":            "MindCare Campus",
		"nav.home":              "Home",
		"nav.resources":         "Resources",
		"nav.relaxation":        "Relaxation",
		"nav.chat":              "AI Support",
		"nav.forum":             "Peer Support",
		"nav.counselors":        "Counselors",
		"nav.games":             "Games",
		"nav.redeem":            "Redeem",
		"hero.title":            "Your Mental Wellness Journey Starts Here",
		"hero.subtitle":         "Culturally-aware, confidential mental health support designed for Indian college students",
		"hero.cta":              "Begin Your Wellness Journey",
		"resources.title":       "Psychoeducational Resources",
		"resources.subtitle":    "Learn about mental health in culturally relevant ways",
		"relaxation.title":      "Relaxation & Mindfulness",
		"relaxation.subtitle":   "Guided practices rooted in Indian wellness traditions",
		"chat.title":            "AI Mental Health First Aid",
		"chat.subtitle":         "Immediate, confidential support when you need it most",
		"forum.title":           "Anonymous Peer Support",
		"forum.subtitle":        "Connect with fellow students in a safe, stigma-free environment",
		"counselors.title":      "Campus Support Directory",
		"counselors.subtitle":   "Find qualified counselors and helplines at your institution",
		"breathing.idle":        "Press start to begin",
		"breathing.inhale":      "Breathe in",
		"breathing.hold":        "Hold",
		"breathing.exhale":      "Breathe out",
		"breathing.cycles":      "Completed cycles",
		"game.title":            "Memory Match",
		"game.moves":            "Moves",
		"game.solved":           "Well done! All pairs found.",
		"booking.confirmed":     "Appointment booked",
		"auth.welcome":          "Welcome back",
		"auth.signedOut":        "Signed out",
		"dashboard.points":      "Points",
		"dashboard.streak":      "Streak",
		"dashboard.appointment": "Upcoming appointments",
	},
	"hi": {
		"site.title":          "माइंडकेयर कैंपस",
		"nav.home":            "होम",
		"nav.resources":       "संसाधन",
		"nav.relaxation":      "विश्राम",
		"nav.chat":            "AI सहायता",
		"nav.forum":           "साथी सहायता",
		"nav.counselors":      "सलाहकार",
		"nav.games":           "खेल",
		"nav.redeem":          "रिडीम",
		"hero.title":          "आपकी मानसिक कल्याण यात्रा यहाँ शुरू होती है",
		"hero.subtitle":       "भारतीय कॉलेज छात्रों के लिए सांस्कृतिक रूप से जागरूक, गोपनीय मानसिक स्वास्थ्य सहायता",
		"hero.cta":            "अपनी कल्याण यात्रा शुरू करें",
		"resources.title":     "मनोशिक्षा संसाधन",
		"resources.subtitle":  "सांस्कृतिक रूप से प्रासंगिक तरीकों से मानसिक स्वास्थ्य के बारे में जानें",
		"relaxation.title":    "विश्राम और माइंडफुलनेस",
		"relaxation.subtitle": "भारतीय कल्याण परंपराओं में निहित निर्देशित अभ्यास",
		"chat.title":          "AI मानसिक स्वास्थ्य प्राथमिक चिकित्सा",
		"chat.subtitle":       "जब आपको सबसे ज्यादा जरूरत हो तो तत्काल, गोपनीय सहायता",
		"forum.title":         "गुमनाम साथी सहायता",
		"forum.subtitle":      "एक सुरक्षित, कलंक मुक्त वातावरण में साथी छात्रों से जुड़ें",
		"counselors.title":    "कैंपस सहायता निर्देशिका",
		"counselors.subtitle": "अपनी संस्था में योग्य सलाहकारों और हेल्पलाइनों का पता लगाएं",
		"breathing.inhale":    "सांस लें",
		"breathing.hold":      "रोकें",
		"breathing.exhale":    "सांस छोड़ें",
	},
}
