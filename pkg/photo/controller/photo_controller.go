package controller

import "github.com/labstack/echo/v4"

type PhotoController interface {
	Upload(c echo.Context) error
	List(c echo.Context) error
}
