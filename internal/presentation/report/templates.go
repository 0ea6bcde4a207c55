package report

const activityTemplate = `# Wallet Activity Report

**Wallet Address:** ` + "`{{.Address}}`" + `
{{- if .Empty}}

No transactions found for this wallet.
{{- else}}
**Time Period:** {{.From}} to {{.To}}
**Total Transactions:** {{.Total}}
**Total Volume:** {{.Volume}} SOL

## Activity Summary
{{range .Summary}}- {{.Emoji}} {{.Type}}: {{.Count}} transactions
{{end}}
## Detailed Transaction History
{{range .Items}}
### {{.Emoji}} Transaction at {{.Time}}
- **Type:** {{.Type}}
- **Value:** {{.Value}}
- **Program:** {{.Program}}
- **Status:** {{.Status}}
- **Signature:** ` + "`{{.Signature}}`" + `
{{- if .Description}}
- **Description:** {{.Description}}
{{- end}}
{{end}}
## Transaction Patterns
- **Most Common Activity:** {{.MostCommon}}
- **Average Transaction Value:** {{.Average}} SOL
- **Activity Frequency:** {{.Frequency}}

## Program Interaction Summary
{{range .Programs}}- {{.Name}}: {{.Count}} interactions
{{end}}
*This activity report includes the last {{.Total}} transactions. For a full analysis, use the analyzeWallet tool.*
{{- end}}
`

const analysisTemplate = `# Wallet Analysis Report {{.RiskEmoji}}

**Wallet Address:** ` + "`{{.Address}}`" + `
**Risk Profile:** {{.Risk}}
**Portfolio Diversification Score:** {{.Diversification}}/100

## Activity Overview
**Total Transactions:** {{.ActivityCount}}
**First Activity:** {{.First}}
**Last Activity:** {{.Last}}
**Transaction Volume:** {{.Volume}} SOL

### Favorite Protocols
{{range .Favorites}}- {{.Name}}: {{.Count}} interactions
{{else}}- None
{{end}}
### Recent Activity Distribution
{{range .Distribution}}- {{.Type}}: {{.Count}} transactions
{{else}}- None
{{end}}
## Behavioral Patterns
{{range .Patterns}}
### {{.Type}} ({{.Confidence}}% confidence)
{{.Description}}
{{end}}
## Active DeFi Positions
{{range .Positions}}
### {{.Protocol}} - {{.Type}}
- Token: {{.Token}}
- Value: {{.Value}}
- APY: {{.APY}}
- Last Updated: {{.Updated}}
{{else}}
No active DeFi positions detected.
{{end}}
## Strategy Recommendations
{{range .Recommendations}}
### {{.Strategy}} ({{.Risk}} RISK)
- {{.Description}}
- Expected Return: {{.Return}}
{{end}}
## Risk Assessment
- Portfolio Concentration: {{.Concentration}}
- Trading Frequency: {{.TradingFrequency}}
- Protocol Diversity: {{.ProtocolDiversity}} different protocols used

## Safety Tips
- Always verify transaction details before signing
- Consider using hardware wallet for large holdings
- Maintain a diversified portfolio across different protocols
- Monitor position health regularly
{{- if .StopLossTip}}
- Consider setting stop-loss orders for trading positions
{{- end}}
{{- if .DiversifyTip}}
- Consider diversifying across more protocols to reduce risk
{{- end}}

*This analysis is based on on-chain activity and is provided for informational purposes only.*
`

const transactionTemplate = `# Transaction Details {{.StatusEmoji}}

## Basic Information
**Type:** {{.TypeEmoji}} {{.Type}}
**Status:** {{.Status}}
**Signature:** ` + "`{{.Signature}}`" + `
**Timestamp:** {{.Timestamp}} ({{.Ago}})
**Transaction Fee:** {{.Fee}} SOL

## Program Interaction
{{range .Programs}}- **{{.Name}}** (` + "`{{.ID}}`" + `)
{{end}}
## Account Participants
{{range .Accounts}}- **{{.Role}}**: ` + "`{{.Address}}`" + `
{{end}}
## Transaction Analysis
- **Complexity:** {{.Complexity}}
- **Program Type:** {{.ProgramTypes}}
- **Account Count:** {{.AccountCount}} accounts involved
{{- if .TransferType}}
- **Transfer Type:** {{.TransferType}}
{{- end}}

## Security Considerations
- Always verify transaction signatures
- Check program IDs match expected addresses
- Confirm account permissions and roles
{{- if .HighFee}}
- **Note:** Higher than average transaction fee
{{- end}}

*This analysis is based on on-chain data and is provided for informational purposes only.*
`
