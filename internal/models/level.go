package models

// EducationLevel enumerates education stages used by profiles and programs.
type EducationLevel string

const (
	LevelHighSchool EducationLevel = "high_school"
	LevelAssociate  EducationLevel = "associate"
	LevelBachelor   EducationLevel = "bachelor"
	LevelMaster     EducationLevel = "master"
	LevelPhD        EducationLevel = "phd"
)

// InstructionLanguage enumerates program teaching languages.
type InstructionLanguage string

const (
	LanguageEnglish InstructionLanguage = "en"
	LanguageTurkish InstructionLanguage = "tr"
	LanguageArabic  InstructionLanguage = "ar"
	LanguageMixed   InstructionLanguage = "mixed"
	// LanguageAny is a preference value only; programs never carry it.
	LanguageAny InstructionLanguage = "any"
)
