package slackgw

// ReportSizeLimit is the maximum size of one report message. Slack rejects
// much larger payloads, and anything near the limit is unreadable anyway.
const ReportSizeLimit = 3000
