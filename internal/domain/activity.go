package domain

import (
	"fmt"
	"strings"
)

// ActivityType identifies the kind of business a MEI runs. It selects the
// fixed-due row, the Simples Nacional annex and the presumed-profit bases.
type ActivityType string

const (
	ActivityCommerce ActivityType = "commerce"
	ActivityServices ActivityType = "services"
	ActivityMixed    ActivityType = "mixed"
	ActivityIndustry ActivityType = "industry"
	ActivityTrucker  ActivityType = "trucker"
)

// AllActivities lists every supported activity in display order
var AllActivities = []ActivityType{
	ActivityCommerce,
	ActivityServices,
	ActivityMixed,
	ActivityIndustry,
	ActivityTrucker,
}

// ParseActivityType converts user input into an ActivityType.
// Portuguese aliases are accepted since that is what most users type.
func ParseActivityType(s string) (ActivityType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commerce", "comercio", "comércio":
		return ActivityCommerce, nil
	case "services", "service", "servicos", "serviços":
		return ActivityServices, nil
	case "mixed", "misto", "comercio_servicos":
		return ActivityMixed, nil
	case "industry", "industria", "indústria":
		return ActivityIndustry, nil
	case "trucker", "caminhoneiro":
		return ActivityTrucker, nil
	}
	return "", &CalculationError{
		Operation: "parse_activity",
		Message:   fmt.Sprintf("unknown activity type %q", s),
		Kind:      ErrInvalidActivity,
	}
}

// Valid reports whether a is one of the known activities
func (a ActivityType) Valid() bool {
	for _, known := range AllActivities {
		if a == known {
			return true
		}
	}
	return false
}

func (a ActivityType) String() string { return string(a) }

// Regime names a tax regime considered by the comparator
type Regime string

const (
	RegimeMEI            Regime = "MEI"
	RegimeSimples        Regime = "Simples Nacional"
	RegimeLucroPresumido Regime = "Lucro Presumido"
)

// Preference returns the tie-break rank of a regime; lower wins.
// MEI carries the lowest administrative burden, Lucro Presumido the highest.
func (r Regime) Preference() int {
	switch r {
	case RegimeMEI:
		return 0
	case RegimeSimples:
		return 1
	case RegimeLucroPresumido:
		return 2
	}
	return 3
}
