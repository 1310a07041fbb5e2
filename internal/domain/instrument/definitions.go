package instrument

// noCrisisItem is passed to items when no question is crisis-flagged.
const noCrisisItem = -1

// items builds a question list that shares one option set. The question at
// position crisis, if any, is crisis-flagged.
func items(opts []Option, crisis int, texts ...LocalizedText) []Question {
	qs := make([]Question, len(texts))
	for i, t := range texts {
		qs[i] = Question{
			Index:      i,
			Text:       t,
			Options:    opts,
			CrisisFlag: i == crisis,
		}
	}
	return qs
}

var frequencyOptions = []Option{
	{0, LocalizedText{"Not at all", "Tidak sama sekali"}},
	{1, LocalizedText{"Several days", "Beberapa hari"}},
	{2, LocalizedText{"More than half the days", "Lebih separuh hari"}},
	{3, LocalizedText{"Nearly every day", "Hampir setiap hari"}},
}

var dassOptions = []Option{
	{0, LocalizedText{"Did not apply to me at all", "Tidak terpakai kepada saya sama sekali"}},
	{1, LocalizedText{"Applied to me to some degree", "Terpakai kepada saya sedikit"}},
	{2, LocalizedText{"Applied to me a considerable degree", "Terpakai kepada saya banyak"}},
	{3, LocalizedText{"Applied to me very much", "Terpakai kepada saya sangat banyak"}},
}

// WHO-5 lists its options from the highest value down.
var who5Options = []Option{
	{5, LocalizedText{"All of the time", "Sepanjang masa"}},
	{4, LocalizedText{"Most of the time", "Kebanyakan masa"}},
	{3, LocalizedText{"More than half the time", "Lebih separuh masa"}},
	{2, LocalizedText{"Less than half the time", "Kurang separuh masa"}},
	{1, LocalizedText{"Some of the time", "Sesetengah masa"}},
	{0, LocalizedText{"At no time", "Tidak sama sekali"}},
}

// K10 options start at 1, so the lowest total is 10.
var k10Options = []Option{
	{1, LocalizedText{"None of the time", "Tidak sama sekali"}},
	{2, LocalizedText{"A little of the time", "Sedikit masa"}},
	{3, LocalizedText{"Some of the time", "Sesetengah masa"}},
	{4, LocalizedText{"Most of the time", "Kebanyakan masa"}},
	{5, LocalizedText{"All of the time", "Sepanjang masa"}},
}

func phq9() *Instrument {
	return &Instrument{
		ID:          PHQ9,
		Name:        LocalizedText{"PHQ-9: Patient Health Questionnaire", "PHQ-9: Soal Selidik Kesihatan Pesakit"},
		Description: LocalizedText{"Depression Screening Tool", "Alat Saringan Kemurungan"},
		Instruction: LocalizedText{
			"Over the last 2 weeks, how often have you been bothered by any of the following problems?",
			"Dalam 2 minggu yang lalu, berapa kerap anda diganggu oleh mana-mana masalah berikut?",
		},
		Questions: items(frequencyOptions, 8,
			LocalizedText{"Little interest or pleasure in doing things", "Kurang minat atau keseronokan dalam melakukan sesuatu"},
			LocalizedText{"Feeling down, depressed, or hopeless", "Berasa sedih, murung, atau putus asa"},
			LocalizedText{"Trouble falling or staying asleep, or sleeping too much", "Masalah untuk tidur atau tidur terlalu banyak"},
			LocalizedText{"Feeling tired or having little energy", "Berasa letih atau kurang tenaga"},
			LocalizedText{"Poor appetite or overeating", "Selera makan yang lemah atau makan berlebihan"},
			LocalizedText{
				"Feeling bad about yourself or that you are a failure or have let yourself or your family down",
				"Berasa buruk tentang diri sendiri atau bahawa anda adalah kegagalan atau telah mengecewakan diri sendiri atau keluarga anda",
			},
			LocalizedText{
				"Trouble concentrating on things, such as reading the newspaper or watching television",
				"Masalah menumpukan perhatian pada sesuatu, seperti membaca surat khabar atau menonton televisyen",
			},
			LocalizedText{
				"Moving or speaking so slowly that other people could have noticed. Or the opposite - being so fidgety or restless that you have been moving around a lot more than usual",
				"Bergerak atau bercakap dengan perlahan sehingga orang lain dapat menyedarinya. Atau sebaliknya - begitu gelisah atau resah sehingga anda telah bergerak lebih banyak daripada biasa",
			},
			LocalizedText{"Thoughts that you would be better off dead, or of hurting yourself", "Fikiran bahawa anda lebih baik mati, atau mencederakan diri sendiri"},
		),
		ScoringType: ScoringSum,
		SeverityRanges: []SeverityRange{
			{0, 4, SeverityMinimal, ColorGreen, LocalizedText{
				"Your score suggests minimal depression symptoms. Continue with healthy habits and self-care.",
				"Skor anda menunjukkan gejala kemurungan yang minimum. Teruskan dengan tabiat sihat dan penjagaan diri.",
			}},
			{5, 9, SeverityMild, ColorYellow, LocalizedText{
				"Your score indicates mild depression symptoms. Consider talking to a counselor and practicing stress management techniques.",
				"Skor anda menunjukkan gejala kemurungan yang ringan. Pertimbangkan untuk bercakap dengan kaunselor dan mengamalkan teknik pengurusan tekanan.",
			}},
			{10, 14, SeverityModerate, ColorOrange, LocalizedText{
				"Your score suggests moderate depression. We recommend seeking support from a mental health professional.",
				"Skor anda menunjukkan kemurungan sederhana. Kami mengesyorkan untuk mendapatkan sokongan daripada profesional kesihatan mental.",
			}},
			{15, 19, SeverityModeratelySevere, ColorRed, LocalizedText{
				"Your score indicates moderately severe depression. Please consult with a mental health professional soon.",
				"Skor anda menunjukkan kemurungan yang agak teruk. Sila berjumpa dengan profesional kesihatan mental tidak lama lagi.",
			}},
			{20, 27, SeveritySevere, ColorRed, LocalizedText{
				"Your score suggests severe depression. Please seek immediate help from a mental health professional.",
				"Skor anda menunjukkan kemurungan yang teruk. Sila dapatkan bantuan segera daripada profesional kesihatan mental.",
			}},
		},
	}
}

func gad7() *Instrument {
	return &Instrument{
		ID:          GAD7,
		Name:        LocalizedText{"GAD-7: Generalized Anxiety Disorder", "GAD-7: Gangguan Kebimbangan Umum"},
		Description: LocalizedText{"Anxiety Screening Tool", "Alat Saringan Kebimbangan"},
		Instruction: LocalizedText{
			"Over the last 2 weeks, how often have you been bothered by the following problems?",
			"Dalam 2 minggu yang lalu, berapa kerap anda diganggu oleh masalah berikut?",
		},
		Questions: items(frequencyOptions, noCrisisItem,
			LocalizedText{"Feeling nervous, anxious, or on edge", "Berasa gementar, bimbang, atau tegang"},
			LocalizedText{"Not being able to stop or control worrying", "Tidak dapat berhenti atau mengawal kebimbangan"},
			LocalizedText{"Worrying too much about different things", "Terlalu bimbang tentang pelbagai perkara"},
			LocalizedText{"Trouble relaxing", "Masalah untuk berehat"},
			LocalizedText{"Being so restless that it is hard to sit still", "Begitu gelisah sehingga sukar untuk duduk diam"},
			LocalizedText{"Becoming easily annoyed or irritable", "Mudah marah atau mudah tersinggung"},
			LocalizedText{"Feeling afraid, as if something awful might happen", "Berasa takut, seolah-olah sesuatu yang mengerikan mungkin berlaku"},
		),
		ScoringType: ScoringSum,
		SeverityRanges: []SeverityRange{
			{0, 4, SeverityMinimal, ColorGreen, LocalizedText{
				"Your score suggests minimal anxiety symptoms. Continue practicing stress management and self-care.",
				"Skor anda menunjukkan gejala kebimbangan yang minimum. Teruskan mengamalkan pengurusan tekanan dan penjagaan diri.",
			}},
			{5, 9, SeverityMild, ColorYellow, LocalizedText{
				"Your score indicates mild anxiety. Consider relaxation techniques and talking to someone you trust.",
				"Skor anda menunjukkan kebimbangan yang ringan. Pertimbangkan teknik relaksasi dan bercakap dengan seseorang yang anda percayai.",
			}},
			{10, 14, SeverityModerate, ColorOrange, LocalizedText{
				"Your score suggests moderate anxiety. We recommend consulting with a mental health professional.",
				"Skor anda menunjukkan kebimbangan sederhana. Kami mengesyorkan untuk berjumpa dengan profesional kesihatan mental.",
			}},
			{15, 21, SeveritySevere, ColorRed, LocalizedText{
				"Your score indicates severe anxiety. Please seek professional help soon.",
				"Skor anda menunjukkan kebimbangan yang teruk. Sila dapatkan bantuan profesional tidak lama lagi.",
			}},
		},
	}
}

func dass21() *Instrument {
	return &Instrument{
		ID:          DASS21,
		Name:        LocalizedText{"DASS-21: Depression Anxiety Stress Scales", "DASS-21: Skala Kemurungan Kebimbangan Tekanan"},
		Description: LocalizedText{"Comprehensive Mental Health Assessment", "Penilaian Kesihatan Mental Menyeluruh"},
		Instruction: LocalizedText{
			"Please read each statement and select the option that indicates how much the statement applied to you over the past week.",
			"Sila baca setiap pernyataan dan pilih pilihan yang menunjukkan berapa banyak pernyataan itu terpakai kepada anda sepanjang minggu lalu.",
		},
		Questions: items(dassOptions, 20,
			LocalizedText{"I found it hard to wind down", "Saya mendapati sukar untuk berehat"},
			LocalizedText{"I was aware of dryness of my mouth", "Saya sedar mulut saya kering"},
			LocalizedText{"I couldn't seem to experience any positive feeling at all", "Saya tidak dapat mengalami sebarang perasaan positif sama sekali"},
			LocalizedText{
				"I experienced breathing difficulty (eg, excessively rapid breathing, breathlessness)",
				"Saya mengalami kesukaran bernafas (cth, pernafasan terlalu cepat, sesak nafas)",
			},
			LocalizedText{"I found it difficult to work up the initiative to do things", "Saya mendapati sukar untuk mengambil inisiatif untuk melakukan sesuatu"},
			LocalizedText{"I tended to over-react to situations", "Saya cenderung untuk bertindak balas berlebihan terhadap situasi"},
			LocalizedText{"I experienced trembling (eg, in the hands)", "Saya mengalami gegaran (cth, di tangan)"},
			LocalizedText{"I felt that I was using a lot of nervous energy", "Saya rasa saya menggunakan banyak tenaga saraf"},
			LocalizedText{
				"I was worried about situations in which I might panic and make a fool of myself",
				"Saya bimbang tentang situasi di mana saya mungkin panik dan membuat diri saya kelihatan bodoh",
			},
			LocalizedText{"I felt that I had nothing to look forward to", "Saya rasa saya tidak mempunyai apa-apa untuk dinanti-nantikan"},
			LocalizedText{"I found myself getting agitated", "Saya mendapati diri saya menjadi gelisah"},
			LocalizedText{"I found it difficult to relax", "Saya mendapati sukar untuk berehat"},
			LocalizedText{"I felt down-hearted and blue", "Saya rasa sedih dan murung"},
			LocalizedText{
				"I was intolerant of anything that kept me from getting on with what I was doing",
				"Saya tidak bertoleransi terhadap apa-apa yang menghalang saya daripada meneruskan apa yang saya lakukan",
			},
			LocalizedText{"I felt I was close to panic", "Saya rasa saya hampir panik"},
			LocalizedText{"I was unable to become enthusiastic about anything", "Saya tidak dapat menjadi bersemangat tentang apa-apa"},
			LocalizedText{"I felt I wasn't worth much as a person", "Saya rasa saya tidak bernilai sebagai seorang insan"},
			LocalizedText{"I felt that I was rather touchy", "Saya rasa saya agak sensitif"},
			LocalizedText{
				"I was aware of the action of my heart in the absence of physical exertion",
				"Saya sedar tentang tindakan jantung saya tanpa senaman fizikal",
			},
			LocalizedText{"I felt scared without any good reason", "Saya rasa takut tanpa sebarang sebab yang baik"},
			LocalizedText{"I felt that life was meaningless", "Saya rasa hidup tidak bermakna"},
		),
		ScoringType: ScoringSubscale,
	}
}

func who5() *Instrument {
	return &Instrument{
		ID:          WHO5,
		Name:        LocalizedText{"WHO-5: Well-Being Index", "WHO-5: Indeks Kesejahteraan"},
		Description: LocalizedText{"Wellbeing Assessment", "Penilaian Kesejahteraan"},
		Instruction: LocalizedText{
			"Please indicate for each of the five statements which is closest to how you have been feeling over the last two weeks.",
			"Sila nyatakan bagi setiap daripada lima pernyataan yang paling dekat dengan perasaan anda sepanjang dua minggu yang lalu.",
		},
		Questions: items(who5Options, noCrisisItem,
			LocalizedText{"I have felt cheerful and in good spirits", "Saya berasa ceria dan bersemangat"},
			LocalizedText{"I have felt calm and relaxed", "Saya berasa tenang dan santai"},
			LocalizedText{"I have felt active and vigorous", "Saya berasa aktif dan cergas"},
			LocalizedText{"I woke up feeling fresh and rested", "Saya bangun dengan berasa segar dan berehat"},
			LocalizedText{"My daily life has been filled with things that interest me", "Kehidupan harian saya dipenuhi dengan perkara yang menarik minat saya"},
		),
		ScoringType: ScoringSum,
		SeverityRanges: []SeverityRange{
			{0, 12, SeverityPoor, ColorRed, LocalizedText{
				"Your wellbeing score is low. Consider reaching out to a mental health professional for support.",
				"Skor kesejahteraan anda rendah. Pertimbangkan untuk menghubungi profesional kesihatan mental untuk sokongan.",
			}},
			{13, 25, SeverityGood, ColorGreen, LocalizedText{
				"Your wellbeing score is positive. Continue with your healthy habits and self-care practices.",
				"Skor kesejahteraan anda positif. Teruskan dengan tabiat sihat dan amalan penjagaan diri anda.",
			}},
		},
	}
}

func k10() *Instrument {
	return &Instrument{
		ID:          K10,
		Name:        LocalizedText{"K10: Kessler Psychological Distress Scale", "K10: Skala Kesusahan Psikologi Kessler"},
		Description: LocalizedText{"General Distress Screening", "Saringan Kesusahan Umum"},
		Instruction: LocalizedText{
			"These questions concern how you have been feeling over the past 4 weeks.",
			"Soalan-soalan ini berkaitan dengan perasaan anda sepanjang 4 minggu yang lalu.",
		},
		Questions: items(k10Options, noCrisisItem,
			LocalizedText{"About how often did you feel tired out for no good reason?", "Berapa kerap anda berasa letih tanpa sebab yang baik?"},
			LocalizedText{"About how often did you feel nervous?", "Berapa kerap anda berasa gementar?"},
			LocalizedText{
				"About how often did you feel so nervous that nothing could calm you down?",
				"Berapa kerap anda berasa begitu gementar sehingga tiada apa yang boleh menenangkan anda?",
			},
			LocalizedText{"About how often did you feel hopeless?", "Berapa kerap anda berasa putus asa?"},
			LocalizedText{"About how often did you feel restless or fidgety?", "Berapa kerap anda berasa gelisah atau resah?"},
			LocalizedText{
				"About how often did you feel so restless you could not sit still?",
				"Berapa kerap anda berasa begitu gelisah sehingga anda tidak dapat duduk diam?",
			},
			LocalizedText{"About how often did you feel depressed?", "Berapa kerap anda berasa murung?"},
			LocalizedText{"About how often did you feel that everything was an effort?", "Berapa kerap anda rasa segala-galanya memerlukan usaha?"},
			LocalizedText{
				"About how often did you feel so sad that nothing could cheer you up?",
				"Berapa kerap anda berasa begitu sedih sehingga tiada apa yang boleh menggembirakan anda?",
			},
			LocalizedText{"About how often did you feel worthless?", "Berapa kerap anda berasa tidak bernilai?"},
		),
		ScoringType: ScoringSum,
		SeverityRanges: []SeverityRange{
			{10, 19, SeverityLow, ColorGreen, LocalizedText{
				"Your distress level is low. You are likely to be well.",
				"Tahap kesusahan anda rendah. Anda mungkin sihat.",
			}},
			{20, 24, SeverityMild, ColorYellow, LocalizedText{
				"Your distress level is mild. You may benefit from stress management strategies.",
				"Tahap kesusahan anda ringan. Anda mungkin mendapat manfaat daripada strategi pengurusan tekanan.",
			}},
			{25, 29, SeverityModerate, ColorOrange, LocalizedText{
				"Your distress level is moderate. Consider seeking support from a mental health professional.",
				"Tahap kesusahan anda sederhana. Pertimbangkan untuk mendapatkan sokongan daripada profesional kesihatan mental.",
			}},
			{30, 50, SeveritySevere, ColorRed, LocalizedText{
				"Your distress level is high. Please seek professional help soon.",
				"Tahap kesusahan anda tinggi. Sila dapatkan bantuan profesional tidak lama lagi.",
			}},
		},
	}
}
