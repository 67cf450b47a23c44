package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// /users/me用。プロフィールと注文履歴（新しい順）をまとめて返す。
type ProfileUsecase struct {
	tx repo.TransactionManager
}

func NewProfileUsecase(tx repo.TransactionManager) *ProfileUsecase {
	return &ProfileUsecase{tx: tx}
}

type ProductSnapshotOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type HistoryItemOutput struct {
	ID       int64                 `json:"id"`
	Quantity int64                 `json:"quantity"`
	Price    decimal.Decimal       `json:"price"`
	Product  ProductSnapshotOutput `json:"product"`
}

type HistoryOrderOutput struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"createdAt"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"totalAmount"`
	Items     []HistoryItemOutput `json:"items"`
}

type MeOutput struct {
	ID        string               `json:"id"`
	Email     string               `json:"email"`
	Name      string               `json:"name"`
	Role      string               `json:"role"`
	CreatedAt time.Time            `json:"createdAt"`
	Orders    []HistoryOrderOutput `json:"orders"`
}

// Meはプロフィール＋注文履歴を1スナップショットで読む。
// プロフィールが無い初回アクセスはその場で作る（ログイン時のEnsureProfileの保険）。
func (u *ProfileUsecase) Me(ctx context.Context, userID string) (MeOutput, error) {
	if userID == "" {
		return MeOutput{}, NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var out MeOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user == nil {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}

		profile, err := r.Profiles().FindByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			profile = model.Profile{UserID: userID, Name: user.Name, Role: user.Role}
			if err := r.Profiles().CreateIfNotExists(ctx, profile); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orders, err := r.Orders().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		histOrders := make([]HistoryOrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			histItems := make([]HistoryItemOutput, 0, len(items))
			for _, it := range items {
				histItems = append(histItems, HistoryItemOutput{
					ID:       it.ID,
					Quantity: it.Quantity,
					Price:    it.Price,
					Product: ProductSnapshotOutput{
						ID:    it.ProductID,
						Name:  it.ProductName,
						Image: it.ProductImage,
					},
				})
			}

			histOrders = append(histOrders, HistoryOrderOutput{
				ID:        o.ID,
				CreatedAt: o.CreatedAt,
				Status:    string(o.Status),
				Total:     o.Total,
				Items:     histItems,
			})
		}

		out = MeOutput{
			ID:        user.ID,
			Email:     user.Email,
			Name:      profile.Name,
			Role:      string(profile.Role),
			CreatedAt: user.CreatedAt,
			Orders:    histOrders,
		}
		return nil
	})

	if err != nil {
		return MeOutput{}, err
	}
	return out, nil
}
