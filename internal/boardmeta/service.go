// Package boardmeta manages board records: name, owner, timestamps. Only
// the metadata is durable — the rectangles on a board live in the board
// hub's memory and vanish with the session, by design.
package boardmeta

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/drostelab/droste/internal/db"
	"github.com/drostelab/droste/internal/typeid"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	queries *db.Queries
}

func NewService(queries *db.Queries) *Service {
	return &Service{queries: queries}
}

type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Board, error) {
	boardID := typeid.NewBoardID()

	dbBoard, err := s.queries.CreateBoard(ctx, db.CreateBoardParams{
		ID:      boardID,
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Get(ctx context.Context, boardID, userID string) (*Board, error) {
	dbBoard, err := s.queries.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != userID {
		return nil, ErrForbidden
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Board, error) {
	dbBoards, err := s.queries.ListBoardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	boards := make([]Board, len(dbBoards))
	for i, b := range dbBoards {
		boards[i] = *dbBoardToBoard(b)
	}

	return boards, nil
}

func (s *Service) Delete(ctx context.Context, boardID, userID string) error {
	dbBoard, err := s.queries.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != userID {
		return ErrForbidden
	}

	return s.queries.DeleteBoard(ctx, boardID)
}

// Exists is the membership check the websocket endpoint uses before letting
// a client join a live session.
func (s *Service) Exists(ctx context.Context, boardID string) (bool, error) {
	_, err := s.queries.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get board: %w", err)
	}
	return true, nil
}

func dbBoardToBoard(b db.Board) *Board {
	return &Board{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
