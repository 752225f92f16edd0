package domain

import (
	"errors"
)

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfFollow        = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this author")
	ErrNotSubscribed     = errors.New("not subscribed to this author")
)

type (
	// SubscriptionResponse is an author the current user follows, with a
	// bounded preview of their latest recipes.
	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeSummary `json:"recipes"`
		RecipesCount int64           `json:"recipes_count"`
	}
)
