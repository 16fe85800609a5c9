package service

// synonymGroups lists fields of study with their abbreviations and Turkish/Arabic names.
// Terms are stored already normalized. The first member is the canonical name and a term
// must not appear in more than one group.
var synonymGroups = [][]string{
	{"computer engineering", "ce", "comp eng", "bilgisayar mühendisliği", "هندسة الحاسوب"},
	{"computer science", "cs", "bilgisayar bilimleri", "علوم الحاسوب"},
	{"software engineering", "se", "yazılım mühendisliği", "هندسة البرمجيات"},
	{"electrical and electronics engineering", "eee", "electrical engineering", "ee", "elektrik elektronik mühendisliği", "الهندسة الكهربائية"},
	{"mechanical engineering", "me", "makine mühendisliği", "الهندسة الميكانيكية"},
	{"civil engineering", "inşaat mühendisliği", "الهندسة المدنية"},
	{"industrial engineering", "ie", "endüstri mühendisliği", "الهندسة الصناعية"},
	{"artificial intelligence", "ai", "yapay zeka", "الذكاء الاصطناعي"},
	{"business administration", "business", "mba", "işletme", "إدارة الأعمال"},
	{"economics", "econ", "iktisat", "ekonomi", "الاقتصاد"},
	{"international relations", "ir", "uluslararası ilişkiler", "العلاقات الدولية"},
	{"medicine", "md", "tıp", "الطب"},
	{"dentistry", "dds", "diş hekimliği", "طب الأسنان"},
	{"pharmacy", "pharm", "eczacılık", "الصيدلة"},
	{"nursing", "hemşirelik", "التمريض"},
	{"architecture", "arch", "mimarlık", "العمارة"},
	{"interior architecture", "interior design", "iç mimarlık", "التصميم الداخلي"},
	{"law", "llb", "hukuk", "القانون"},
	{"psychology", "psych", "psikoloji", "علم النفس"},
	{"molecular biology and genetics", "mbg", "moleküler biyoloji ve genetik", "genetics"},
}

// nearEquivalentFields maps a canonical field to conceptually close fields. It is only
// consulted when a primary search returns no programs.
var nearEquivalentFields = map[string][]string{
	"computer engineering":                   {"software engineering", "computer science", "electrical and electronics engineering"},
	"computer science":                       {"computer engineering", "software engineering", "artificial intelligence"},
	"software engineering":                   {"computer engineering", "computer science"},
	"electrical and electronics engineering": {"computer engineering", "mechanical engineering", "mechatronics engineering"},
	"mechanical engineering":                 {"mechatronics engineering", "industrial engineering", "aerospace engineering"},
	"civil engineering":                      {"architecture", "urban planning", "geomatics engineering"},
	"industrial engineering":                 {"management engineering", "mechanical engineering", "business administration"},
	"artificial intelligence":                {"computer science", "computer engineering", "data science"},
	"business administration":                {"economics", "management information systems", "international trade"},
	"economics":                              {"business administration", "finance", "international trade"},
	"international relations":                {"political science", "public administration", "law"},
	"medicine":                               {"dentistry", "pharmacy", "nursing"},
	"dentistry":                              {"medicine", "pharmacy", "oral and dental health"},
	"pharmacy":                               {"medicine", "chemistry", "molecular biology and genetics"},
	"nursing":                                {"midwifery", "physiotherapy", "nutrition and dietetics"},
	"architecture":                           {"interior architecture", "urban planning", "civil engineering"},
	"interior architecture":                  {"architecture", "industrial design", "graphic design"},
	"law":                                    {"international relations", "political science", "public administration"},
	"psychology":                             {"guidance and psychological counseling", "sociology", "social work"},
	"molecular biology and genetics":         {"biology", "bioengineering", "chemistry"},
}
