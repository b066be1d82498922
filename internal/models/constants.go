package models

// ProjectType константы категорий проектов
const (
	ProjectTypeAgriculture    = "Agriculture"
	ProjectTypeLivestock      = "Livestock"
	ProjectTypeFishing        = "Fishing"
	ProjectTypeTransportation = "Transportation"
	ProjectTypeFoodBeverage   = "Food and Beverage"
	ProjectTypeCultureArts    = "Culture and Arts"
	ProjectTypeOtherBusiness  = "Other Business"
)

// WritingStyle константы стилей текста
const (
	WritingStyleProfessional = "Professional"
	WritingStyleConcise      = "Concise"
	WritingStyleDetailed     = "Detailed"
	WritingStyleCreative     = "Creative"
)

// Complexity константы уровней сложности
const (
	ComplexityLow    = "Low"
	ComplexityMedium = "Medium"
	ComplexityHigh   = "High"
)

// Языки, на которых генерируется предложение
const (
	LanguageEnglish = "en"
	LanguageSwahili = "sw"
)

// ValidProjectTypes список валидных категорий
var ValidProjectTypes = map[string]struct{}{
	ProjectTypeAgriculture:    {},
	ProjectTypeLivestock:      {},
	ProjectTypeFishing:        {},
	ProjectTypeTransportation: {},
	ProjectTypeFoodBeverage:   {},
	ProjectTypeCultureArts:    {},
	ProjectTypeOtherBusiness:  {},
}

// ValidWritingStyles список валидных стилей
var ValidWritingStyles = map[string]struct{}{
	WritingStyleProfessional: {},
	WritingStyleConcise:      {},
	WritingStyleDetailed:     {},
	WritingStyleCreative:     {},
}

// ValidComplexities список валидных уровней сложности
var ValidComplexities = map[string]struct{}{
	ComplexityLow:    {},
	ComplexityMedium: {},
	ComplexityHigh:   {},
}

// LanguageNames сопоставляет код языка с его названием в промпте
var LanguageNames = map[string]string{
	LanguageEnglish: "English",
	LanguageSwahili: "Swahili",
}
