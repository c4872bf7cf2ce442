package widget

// Port is the UI surface the controller drives. All methods are called from
// the UI goroutine.
type Port interface {
	// RenderMessage appends msg to the message list
	RenderMessage(msg *Message)
	// UpdateMessage redraws a message that was changed in place
	UpdateMessage(msg *Message)

	// ClearInput empties the text input
	ClearInput()
	// ContentHeight is the height the input needs to show its content,
	// never less than its current height
	ContentHeight() int
	SetInputHeight(h int)

	ScrollToBottom()
	SetVisibility(visible bool)
}
