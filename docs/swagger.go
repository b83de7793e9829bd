// Package docs Address Search API.
//
// Сервис поиска адресов с подсказками по мере ввода.
// Текст ввода отправляется во внешний геокодер (Nominatim) с дебаунсом,
// результаты группируются по категории, выбор публикуется в Redis Stream.
//
// Основные возможности:
// - Разовый сгруппированный поиск
// - Сессии поиска с дебаунсом и отбрасыванием устаревших ответов
// - Публикация выбора в stream:location:selected
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
