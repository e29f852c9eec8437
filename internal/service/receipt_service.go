package service

import (
	"context"
	"os"

	"github.com/google/uuid"

	"tillpos/internal/apierror"
	"tillpos/internal/infra"
	"tillpos/internal/store"
)

// ReceiptService materializes the receipt PDF for a recorded sale. The worker
// pool normally generates it right after checkout; this path covers download
// requests that arrive first (or after a receipt directory wipe).
type ReceiptService interface {
	Generate(ctx context.Context, id uuid.UUID) (string, error)
}

type receiptService struct {
	store       *store.Store
	storeName   string
	storagePath string
}

func NewReceiptService(st *store.Store, storeName, storagePath string) ReceiptService {
	return &receiptService{store: st, storeName: storeName, storagePath: storagePath}
}

func (s *receiptService) Generate(_ context.Context, id uuid.UUID) (string, error) {
	sale, ok := s.store.GetSale(id)
	if !ok {
		return "", apierror.New(apierror.KindNotFound, "sale not found")
	}
	path := infra.ReceiptPath(s.storagePath, &sale)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return infra.GenerateReceiptPDF(&sale, s.storeName, s.storagePath)
}
