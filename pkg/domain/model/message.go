package model

// ParseMode tells the chat service how to interpret markup in a message
type ParseMode string

const (
	ParseModeHTML     ParseMode = "HTML"
	ParseModeMarkdown ParseMode = "mrkdwn"
)

// FormattedMessage is the notification text sent to the chat service
type FormattedMessage struct {
	Text      string
	ParseMode ParseMode
}
