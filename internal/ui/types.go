package ui

// Progress creates progress indicators.
type Progress interface {
	// Start creates a determinate progress bar for total steps.
	Start(title string, total int) ProgressBar

	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Spinner is an indeterminate progress indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}
