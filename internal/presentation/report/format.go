package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

const (
	defaultTypeEmoji = "•"
	detailTypeEmoji  = "📄"
	highFeeSOL       = 0.001
)

var typeEmoji = map[entities.ActivityType]string{
	entities.ActivityTransfer: "💸",
	entities.ActivitySwap:     "🔄",
	entities.ActivityMint:     "🌟",
	entities.ActivityStaking:  "🥩",
	entities.ActivityTrading:  "📊",
	entities.ActivityLending:  "💰",
	entities.ActivityOther:    "📝",
}

var riskEmoji = map[entities.RiskProfile]string{
	entities.RiskConservative: "🟢",
	entities.RiskModerate:     "🟡",
	entities.RiskAggressive:   "🔴",
}

// TypeEmoji returns the report icon of an activity type
func TypeEmoji(t entities.ActivityType) string {
	if e, ok := typeEmoji[t]; ok {
		return e
	}
	return defaultTypeEmoji
}

// RiskEmoji returns the report icon of a risk profile
func RiskEmoji(r entities.RiskProfile) string {
	return riskEmoji[r]
}

func isoTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}

func isoTimeOrNA(ms int64) string {
	if ms <= 0 {
		return "N/A"
	}
	return isoTime(ms)
}

func sol(v *float64, precision int, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', precision, 64) + " SOL"
}

func timeAgo(now time.Time, ms int64) string {
	seconds := int64(now.Sub(time.UnixMilli(ms)).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconds ago", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	default:
		return fmt.Sprintf("%d days ago", seconds/86400)
	}
}

type typeCount struct {
	Emoji string
	Type  entities.ActivityType
	Count int
}

// countTypes counts activities per type in first-encounter order
func countTypes(activities []entities.Activity) []typeCount {
	index := make(map[entities.ActivityType]int)
	var counts []typeCount
	for _, a := range activities {
		if i, ok := index[a.Type]; ok {
			counts[i].Count++
			continue
		}
		index[a.Type] = len(counts)
		counts = append(counts, typeCount{Emoji: TypeEmoji(a.Type), Type: a.Type, Count: 1})
	}
	return counts
}

func mostCommonType(counts []typeCount) entities.ActivityType {
	sorted := append([]typeCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0].Type
}

type programCount struct {
	Name  string
	Count int
}

// countPrograms counts activities per program id in first-encounter order
func countPrograms(activities []entities.Activity) []programCount {
	index := make(map[string]int)
	var counts []programCount
	for _, a := range activities {
		if i, ok := index[a.ProgramID]; ok {
			counts[i].Count++
			continue
		}
		index[a.ProgramID] = len(counts)
		counts = append(counts, programCount{Name: protocols.Identify(a.ProgramID), Count: 1})
	}
	return counts
}

func accountRole(account string, programs []entities.ProgramInfo) string {
	switch account {
	case protocols.SystemProgramID:
		return "System Program"
	case protocols.ComputeBudgetProgramID:
		return "Compute Budget Program"
	}
	for _, p := range programs {
		if p.ID == account {
			return "Program"
		}
	}
	return "User Account"
}

func programNames(programs []entities.ProgramInfo) string {
	names := make([]string, 0, len(programs))
	for _, p := range programs {
		name := p.Name
		if name == "" {
			name = protocols.Unknown
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
