package application

// Column is one pipeline stage with its applications
type Column struct {
	Status       ApplicationStatus `json:"status"`
	Count        int               `json:"count"`
	Applications []Application     `json:"applications"`
}

// Board is the pipeline grouped by stage, always listing every stage in order
type Board []Column

// GroupByStatus buckets applications by status preserving input order within
// each stage. Applications with an unknown status land under NEW.
func GroupByStatus(apps []Application) Board {
	index := make(map[ApplicationStatus]int, len(Stages))
	board := make(Board, len(Stages))
	for i, s := range Stages {
		index[s] = i
		board[i] = Column{Status: s, Applications: []Application{}}
	}

	for _, a := range apps {
		i := index[a.Status.Normalize()]
		board[i].Applications = append(board[i].Applications, a)
	}

	for i := range board {
		board[i].Count = len(board[i].Applications)
	}
	return board
}

// Column returns the column of status
func (b Board) Column(status ApplicationStatus) Column {
	for _, c := range b {
		if c.Status == status {
			return c
		}
	}
	return Column{Status: status}
}

// Total counts every application on the board
func (b Board) Total() int {
	n := 0
	for _, c := range b {
		n += c.Count
	}
	return n
}
