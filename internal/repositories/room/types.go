package room

import "github.com/quizden/quizden/internal/models"

type CreateRoomInput struct {
	Room *models.Room
}

type GetRoomInput struct {
	Code string
}

type SaveRoomInput struct {
	Room *models.Room
}

type DeleteRoomInput struct {
	Code string
}

type ListActiveCodesInput struct {
}

type ListActiveCodesOutput struct {
	Codes []string
}

type SubscribeInput struct {
	Code string
}
