package analytics

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"pet-clinic-analytics/internal/domain/clinic"
)

// Locale concentra los textos que aparecen en los payloads (meses, leyendas).
type Locale struct {
	Tag            language.Tag
	Months         [12]string
	CategoryLabels map[clinic.EventCategory]string
	TierLabels     [3]string // alto, medio, bajo
	YearsSuffix    string
}

var (
	localePtBR = Locale{
		Tag:    language.BrazilianPortuguese,
		Months: [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"},
		CategoryLabels: map[clinic.EventCategory]string{
			clinic.CategoryEncounter:  "Consulta",
			clinic.CategoryVaccine:    "Vacinação",
			clinic.CategoryExam:       "Exame",
			clinic.CategoryMedication: "Medicação",
			clinic.CategoryOther:      "Outro",
		},
		TierLabels:  [3]string{"Alto Valor", "Médio Valor", "Baixo Valor"},
		YearsSuffix: "anos",
	}

	localeEn = Locale{
		Tag:    language.English,
		Months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		CategoryLabels: map[clinic.EventCategory]string{
			clinic.CategoryEncounter:  "Consultation",
			clinic.CategoryVaccine:    "Vaccination",
			clinic.CategoryExam:       "Exam",
			clinic.CategoryMedication: "Medication",
			clinic.CategoryOther:      "Other",
		},
		TierLabels:  [3]string{"High Value", "Medium Value", "Low Value"},
		YearsSuffix: "years",
	}

	supportedLocales = []Locale{localePtBR, localeEn}
	localeMatcher    = language.NewMatcher([]language.Tag{localePtBR.Tag, localeEn.Tag})
)

// MatchLocale elige el locale soportado más cercano al tag pedido (ej: "pt-BR", "pt", "en-US").
// Tags inválidos o vacíos caen en pt-BR.
func MatchLocale(tag string) Locale {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return localePtBR
	}
	t, err := language.Parse(tag)
	if err != nil {
		return localePtBR
	}
	_, idx, conf := localeMatcher.Match(t)
	if conf == language.No {
		return localePtBR
	}
	return supportedLocales[idx]
}

func (l Locale) Month(m time.Month) string {
	return l.Months[int(m)-1]
}

// DayMonth formatea "dd/mm".
func (l Locale) DayMonth(t time.Time) string {
	return fmt.Sprintf("%02d/%02d", t.Day(), int(t.Month()))
}

// MonthYear formatea "Mmm/yyyy".
func (l Locale) MonthYear(t time.Time) string {
	return fmt.Sprintf("%s/%d", l.Month(t.Month()), t.Year())
}

// MonthShortYear formatea "Mmm/yy".
func (l Locale) MonthShortYear(t time.Time) string {
	return fmt.Sprintf("%s/%02d", l.Month(t.Month()), t.Year()%100)
}

func (l Locale) CategoryLabel(c clinic.EventCategory) string {
	if s, ok := l.CategoryLabels[c]; ok {
		return s
	}
	return string(c)
}

// AgeBandLabel arma "0-2 anos" o "8+ anos" para la última franja.
func (l Locale) AgeBandLabel(minYears, maxYears int, open bool) string {
	if open {
		return fmt.Sprintf("%d+ %s", minYears, l.YearsSuffix)
	}
	return fmt.Sprintf("%d-%d %s", minYears, maxYears, l.YearsSuffix)
}
