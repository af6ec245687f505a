package authhandler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"change-tools-backend/db"
	usersstore "change-tools-backend/lib/users/store"
	authutils "change-tools-backend/lib/utils/auth-utils"
	"change-tools-backend/models"
	authapimodels "change-tools-backend/models/api/auth"
	userapimodels "change-tools-backend/models/api/users"
)

type Provider interface {
	Login(email, password string) (resp authapimodels.JWTResponse, err error)
	Refresh(refreshToken string) (resp authapimodels.JWTResponse, err error)
	Me(ctx *fiber.Ctx) (item userapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		usersStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	usersStore usersstore.Provider
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	rec, err := i.usersStore.FindByEmail(email)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !rec.IsActive || rec.Password != authutils.GetMD5Hash(password) {
		return authapimodels.JWTResponse{}, errors.New("неверный логин или пароль")
	}
	return i.issueTokens(rec.ID, rec.GetFullName(), rec.Role)
}

func (i impl) Refresh(refreshToken string) (authapimodels.JWTResponse, error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	userID, _ := claims["sub"].(string)
	rec, err := i.usersStore.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !rec.IsActive {
		return authapimodels.JWTResponse{}, errors.New("пользователь не найден")
	}
	return i.issueTokens(rec.ID, rec.GetFullName(), rec.Role)
}

func (i impl) Me(ctx *fiber.Ctx) (userapimodels.UserView, error) {
	claims := authutils.GetClaims(ctx)
	userID, _ := claims["sub"].(string)
	rec, err := i.usersStore.GetByID(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	if rec == nil {
		return userapimodels.UserView{}, errors.New("пользователь не найден")
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) issueTokens(userID, name string, role models.OrgRole) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(userID, name, role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	log.
		WithField("user_id", userID).
		Info("пользователь аутентифицирован")
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
