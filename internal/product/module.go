package product

import (
	"rentstock/internal/store"

	"go.uber.org/zap"
)

func NewModule(coord *store.Coordinator, logger *zap.Logger) (*Service, *Controller) {
	svc := NewService(coord, logger)
	return svc, NewController(svc, logger)
}
