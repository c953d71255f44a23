package booking

// Notifier surfaces short user-facing messages, such as the seat cap notice.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

type discardNotifier struct{}

func (discardNotifier) Notify(string) {}
