package main

// TUI messages for the Elm architecture

// noticeExpiredMsg dismisses the notice with the given id
type noticeExpiredMsg struct {
	id int
}
