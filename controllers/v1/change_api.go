package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"change-tools-backend/controllers"
	approvalhandler "change-tools-backend/lib/approval"
	approvalsynchandler "change-tools-backend/lib/approval-sync"
	changehandler "change-tools-backend/lib/change"
	"change-tools-backend/middleware"
	apimodels "change-tools-backend/models/api"
	changeapimodels "change-tools-backend/models/api/change"
)

type changeApiController struct {
	controllers.BaseAPIController
}

type changeCreatedView struct {
	ID   string                         `json:"id"`
	Sync approvalsynchandler.SyncResult `json:"sync"`
}

func InitChangeApiRouters(app *fiber.App) {
	controller := changeApiController{}
	app.Route("change", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Delete("", controller.delete)
			idRoute.Post("sync", controller.sync)
			idRoute.Get("effective-role", controller.effectiveRole)
			idRoute.Get("approvals", controller.approvals)
			idRoute.Route("approvals/:recId", func(recRoute fiber.Router) {
				recRoute.Put("accept", controller.accept)
				recRoute.Put("reject", controller.reject)
				recRoute.Put("abstain", controller.abstain)
			})
		})
	})
}

// @Summary Создание изменения
// @Tags Изменения
// @Description Создание изменения, состав согласования собирается сразу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 changeapimodels.ChangeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=changeCreatedView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change [post]
func (c *changeApiController) create(ctx *fiber.Ctx) error {
	var payload changeapimodels.ChangeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, syncResult, err := changehandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания изменения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(changeCreatedView{
		ID:   id,
		Sync: syncResult,
	}))
}

// @Summary Список изменений
// @Tags Изменения
// @Description Список изменений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 apimodels.Pagination	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]changeapimodels.ChangeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/list [post]
func (c *changeApiController) list(ctx *fiber.Ctx) error {
	var payload apimodels.Pagination
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	result, rowCount, err := changehandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка изменений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(result, rowCount))
}

// @Summary Получение изменения
// @Tags Изменения
// @Description Получение изменения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=changeapimodels.ChangeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id} [get]
func (c *changeApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := changehandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения изменения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Обновление изменения
// @Tags Изменения
// @Description Обновление изменения, состав согласования пересобирается сразу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 changeapimodels.ChangeData	true	"request body"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=approvalsynchandler.SyncResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id} [put]
func (c *changeApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload changeapimodels.ChangeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	syncResult, err := changehandler.Instance.Update(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления изменения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(syncResult))
}

// @Summary Удаление изменения
// @Tags Изменения
// @Description Удаление изменения вместе с записями согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id} [delete]
func (c *changeApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = changehandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления изменения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Пересборка состава согласования
// @Tags Изменения
// @Description Пересборка состава согласования по текущим данным изменения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=approvalsynchandler.SyncResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/sync [post]
func (c *changeApiController) sync(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	syncResult, err := changehandler.Instance.Sync(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка пересборки согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(syncResult))
}

// @Summary Эффективная роль пользователя в изменении
// @Tags Изменения
// @Description Роль текущего пользователя относительно организаций изменения, только для отображения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=changeapimodels.EffectiveRoleView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/effective-role [get]
func (c *changeApiController) effectiveRole(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := changehandler.Instance.EffectiveRole(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка определения роли")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Записи согласования изменения
// @Tags Изменения
// @Description Список записей согласования изменения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response{data=[]changeapimodels.ApprovalRecordView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/approvals [get]
func (c *changeApiController) approvals(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.List(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения записей согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Согласовать
// @Tags Изменения
// @Description Принять положительное решение по записи согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 changeapimodels.ApprovalDecision	true	"request body"
// @Param   id          		path    string  true    "change ID"
// @Param   recId          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/approvals/{recId}/accept [put]
func (c *changeApiController) accept(ctx *fiber.Ctx) error {
	return c.decide(ctx, approvalhandler.Instance.Accept)
}

// @Summary Отклонить
// @Tags Изменения
// @Description Отклонить изменение, комментарий обязателен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 changeapimodels.ApprovalDecision	true	"request body"
// @Param   id          		path    string  true    "change ID"
// @Param   recId          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/approvals/{recId}/reject [put]
func (c *changeApiController) reject(ctx *fiber.Ctx) error {
	return c.decide(ctx, approvalhandler.Instance.Reject)
}

// @Summary Воздержаться
// @Tags Изменения
// @Description Воздержаться от решения по записи согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 changeapimodels.ApprovalDecision	true	"request body"
// @Param   id          		path    string  true    "change ID"
// @Param   recId          		path    string  true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/change/{id}/approvals/{recId}/abstain [put]
func (c *changeApiController) abstain(ctx *fiber.Ctx) error {
	return c.decide(ctx, approvalhandler.Instance.Abstain)
}

func (c *changeApiController) decide(
	ctx *fiber.Ctx,
	decideFunc func(changeID, recID, userID string, data changeapimodels.ApprovalDecision) (string, error),
) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	recID, err := c.GetIDByKey(ctx, "recId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload changeapimodels.ApprovalDecision
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	hMsg, err := decideFunc(id, recID, middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия решения")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
