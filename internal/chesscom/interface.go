package chesscom

import "context"

// ClientInterface defines the interface for Chess.com API operations.
type ClientInterface interface {
	FetchArchives(ctx context.Context, username string) ([]string, error)
	FetchMonthly(ctx context.Context, archiveURL string) ([]MonthlyGame, error)
}

var _ ClientInterface = (*Client)(nil)
