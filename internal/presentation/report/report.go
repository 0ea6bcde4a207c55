// Package report renders wallet analytics results as markdown reports
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

var (
	activityTmpl    = template.Must(template.New("activity").Parse(activityTemplate))
	analysisTmpl    = template.Must(template.New("analysis").Parse(analysisTemplate))
	transactionTmpl = template.Must(template.New("transaction").Parse(transactionTemplate))
)

// Renderer produces markdown reports
type Renderer struct {
	now func() time.Time
}

// NewRenderer creates a renderer using the wall clock for relative times
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock creates a renderer with a custom clock
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

type activityItem struct {
	Emoji       string
	Time        string
	Type        entities.ActivityType
	Value       string
	Program     string
	Status      string
	Signature   string
	Description string
}

type activityView struct {
	Address    string
	Empty      bool
	From       string
	To         string
	Total      int
	Volume     string
	Summary    []typeCount
	Items      []activityItem
	MostCommon entities.ActivityType
	Average    string
	Frequency  string
	Programs   []programCount
}

// ActivityHistory renders the activity history report of a wallet
func (r *Renderer) ActivityHistory(address string, activities []entities.Activity) (string, error) {
	view := activityView{
		Address: address,
		Empty:   len(activities) == 0,
		Total:   len(activities),
	}

	if !view.Empty {
		var volume float64
		oldest, newest := activities[0].Timestamp, activities[0].Timestamp
		for _, a := range activities {
			volume += a.ValueOrZero()
			if a.Timestamp < oldest {
				oldest = a.Timestamp
			}
			if a.Timestamp > newest {
				newest = a.Timestamp
			}

			status := "✅ Success"
			if !a.Success {
				status = "❌ Failed"
			}
			view.Items = append(view.Items, activityItem{
				Emoji:       TypeEmoji(a.Type),
				Time:        isoTime(a.Timestamp),
				Type:        a.Type,
				Value:       sol(a.Value, 6, "N/A"),
				Program:     protocols.Identify(a.ProgramID),
				Status:      status,
				Signature:   a.Signature,
				Description: a.Description,
			})
		}

		view.From = isoTime(oldest)
		view.To = isoTime(newest)
		view.Volume = strconv.FormatFloat(volume, 'f', 4, 64)
		view.Summary = countTypes(activities)
		view.MostCommon = mostCommonType(view.Summary)
		view.Average = strconv.FormatFloat(volume/float64(len(activities)), 'f', 4, 64)
		view.Frequency = "N/A"
		if span := newest - oldest; span > 0 {
			perDay := float64(len(activities)) / float64(span) * float64((24 * time.Hour).Milliseconds())
			view.Frequency = strconv.FormatFloat(perDay, 'f', 2, 64) + " transactions per day"
		}
		view.Programs = countPrograms(activities)
	}

	return execute(activityTmpl, view)
}

type patternItem struct {
	Type        entities.PatternType
	Confidence  string
	Description string
}

type positionItem struct {
	Protocol string
	Type     entities.PositionType
	Token    string
	Value    string
	APY      string
	Updated  string
}

type strategyItem struct {
	Strategy    string
	Risk        string
	Description string
	Return      string
}

type analysisView struct {
	RiskEmoji         string
	Address           string
	Risk              string
	Diversification   int
	ActivityCount     int
	First             string
	Last              string
	Volume            string
	Favorites         []entities.ProtocolCount
	Distribution      []typeCount
	Patterns          []patternItem
	Positions         []positionItem
	Recommendations   []strategyItem
	Concentration     string
	TradingFrequency  string
	ProtocolDiversity int
	StopLossTip       bool
	DiversifyTip      bool
}

// WalletAnalysis renders the full analysis report of a wallet
func (r *Renderer) WalletAnalysis(analysis entities.WalletAnalysis) (string, error) {
	profile := analysis.Profile

	view := analysisView{
		RiskEmoji:         RiskEmoji(profile.RiskProfile),
		Address:           profile.Address,
		Risk:              strings.ToUpper(string(profile.RiskProfile)),
		Diversification:   profile.PortfolioDiversification,
		ActivityCount:     profile.ActivityCount,
		First:             isoTimeOrNA(profile.FirstActivityDate),
		Last:              isoTimeOrNA(profile.LastActivityDate),
		Volume:            strconv.FormatFloat(profile.TransactionVolume, 'f', 2, 64),
		Favorites:         profile.FavoriteProtocols,
		Distribution:      countTypes(analysis.RecentActivities),
		Concentration:     concentration(profile.PortfolioDiversification),
		TradingFrequency:  tradingFrequency(profile.ActivityCount),
		ProtocolDiversity: len(profile.FavoriteProtocols),
		StopLossTip:       profile.RiskProfile == entities.RiskAggressive,
		DiversifyTip:      profile.PortfolioDiversification < 30,
	}

	for _, p := range analysis.Patterns {
		view.Patterns = append(view.Patterns, patternItem{
			Type:        p.PatternType,
			Confidence:  strconv.FormatFloat(p.Confidence*100, 'f', 1, 64),
			Description: p.Description,
		})
	}

	for _, p := range analysis.Positions {
		token := p.TokenA
		if token == "" {
			token = "Multiple"
		}
		apy := "N/A"
		if p.APY != nil {
			apy = strconv.FormatFloat(*p.APY, 'f', 2, 64) + "%"
		}
		view.Positions = append(view.Positions, positionItem{
			Protocol: p.Protocol,
			Type:     p.Type,
			Token:    token,
			Value:    sol(p.Value, 2, "Unknown"),
			APY:      apy,
			Updated:  isoTime(p.Timestamp),
		})
	}

	for _, s := range analysis.Recommendations {
		view.Recommendations = append(view.Recommendations, strategyItem{
			Strategy:    s.Strategy,
			Risk:        strings.ToUpper(string(s.RiskLevel)),
			Description: s.Description,
			Return:      s.PotentialReturn,
		})
	}

	return execute(analysisTmpl, view)
}

func concentration(diversification int) string {
	switch {
	case diversification < 30:
		return "⚠️ HIGH"
	case diversification < 60:
		return "⚡ MEDIUM"
	default:
		return "✅ LOW"
	}
}

func tradingFrequency(activityCount int) string {
	switch {
	case activityCount > 100:
		return "🔄 HIGH"
	case activityCount > 50:
		return "⚡ MEDIUM"
	default:
		return "🐢 LOW"
	}
}

type accountItem struct {
	Role    string
	Address string
}

type transactionView struct {
	StatusEmoji  string
	TypeEmoji    string
	Type         entities.ActivityType
	Status       string
	Signature    string
	Timestamp    string
	Ago          string
	Fee          string
	Programs     []entities.ProgramInfo
	Accounts     []accountItem
	Complexity   string
	ProgramTypes string
	AccountCount int
	TransferType string
	HighFee      bool
}

// TransactionDetails renders the detail report of a single transaction
func (r *Renderer) TransactionDetails(details entities.TransactionDetails) (string, error) {
	view := transactionView{
		StatusEmoji:  "❌",
		TypeEmoji:    detailTypeEmoji,
		Type:         details.Type,
		Status:       details.Status,
		Signature:    details.Signature,
		Timestamp:    isoTime(details.BlockTime),
		Ago:          timeAgo(r.now(), details.BlockTime),
		Fee:          strconv.FormatFloat(details.Fee, 'f', -1, 64),
		Programs:     details.ProgramIDs,
		Complexity:   "Simple (Single Program)",
		ProgramTypes: programNames(details.ProgramIDs),
		AccountCount: len(details.Accounts),
		HighFee:      details.Fee > highFeeSOL,
	}

	if details.Status == entities.StatusSuccess {
		view.StatusEmoji = "✅"
	}
	if e, ok := typeEmoji[details.Type]; ok {
		view.TypeEmoji = e
	}
	if len(details.ProgramIDs) > 1 {
		view.Complexity = "Complex (Multiple Programs)"
	}

	for _, account := range details.Accounts {
		view.Accounts = append(view.Accounts, accountItem{
			Role:    accountRole(account, details.ProgramIDs),
			Address: account,
		})
	}

	if details.Type == entities.ActivityTransfer {
		view.TransferType = "SOL Transfer"
		tokenProgram := protocols.MustAddress(protocols.TokenProgram)
		for _, p := range details.ProgramIDs {
			if p.ID == tokenProgram {
				view.TransferType = "Token Transfer"
				break
			}
		}
	}

	return execute(transactionTmpl, view)
}

func execute(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
