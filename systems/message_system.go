package systems

// MessageLog stores game messages
type MessageLog struct {
	Messages    []ColoredMessage
	MaxMessages int
}

// Global message log instances (singletons)
var (
	globalMessageLog *MessageLog
	globalDebugLog   *MessageLog
)

// GetMessageLog returns the global message log instance
func GetMessageLog() *MessageLog {
	if globalMessageLog == nil {
		globalMessageLog = NewMessageLog()
	}
	return globalMessageLog
}

// GetDebugLog returns the log shown by the debug overlay
func GetDebugLog() *MessageLog {
	if globalDebugLog == nil {
		globalDebugLog = NewMessageLog()
		globalDebugLog.MaxMessages = 200
	}
	return globalDebugLog
}

// NewMessageLog creates a new message log
func NewMessageLog() *MessageLog {
	return &MessageLog{
		Messages:    []ColoredMessage{},
		MaxMessages: 100, // Store the last 100 messages
	}
}

// Add adds a normal message to the log
func (ml *MessageLog) Add(message string) {
	ml.AddTyped(message, MessageTypeNormal)
}

// AddTyped adds a message with an explicit type
func (ml *MessageLog) AddTyped(message string, msgType MessageType) {
	if n := len(ml.Messages); n > 0 && ml.Messages[n-1].Text == message && ml.Messages[n-1].Type == msgType {
		ml.Messages[n-1].Repeats++
		return
	}
	ml.Messages = append(ml.Messages, ColoredMessage{Text: message, Type: msgType, Repeats: 1})

	// Truncate if we have too many messages
	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}
}

// AddCombat adds a combat message
func (ml *MessageLog) AddCombat(message string) { ml.AddTyped(message, MessageTypeCombat) }

// AddItem adds an item message
func (ml *MessageLog) AddItem(message string) { ml.AddTyped(message, MessageTypeItem) }

// AddAlert adds an important alert
func (ml *MessageLog) AddAlert(message string) { ml.AddTyped(message, MessageTypeAlert) }

// AddEnvironment adds descriptive text
func (ml *MessageLog) AddEnvironment(message string) { ml.AddTyped(message, MessageTypeEnvironment) }

// AddProgress adds an experience or level-up message
func (ml *MessageLog) AddProgress(message string) { ml.AddTyped(message, MessageTypeProgress) }

// AddSystem adds a system message
func (ml *MessageLog) AddSystem(message string) { ml.AddTyped(message, MessageTypeSystem) }

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []ColoredMessage {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}

	result := make([]ColoredMessage, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []ColoredMessage{}
}
