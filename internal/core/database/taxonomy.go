package database

import "kinopro/internal/domain"

// DefaultTaxonomy 城市与职业分类的初始数据
func DefaultTaxonomy() domain.Taxonomy {
	return domain.Taxonomy{
		Cities: []string{
			"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань",
			"Нижний Новгород", "Челябинск", "Красноярск", "Самара", "Ростов-на-Дону",
		},
		Groups: []string{
			"Режиссерский цех", "Актерский цех", "Операторский цех", "Продюсерский цех",
			"Сценарный цех", "Звукорежиссерский цех", "Гримерный цех", "Монтажный цех",
			"Художественный цех", "Технический цех",
		},
		Professions: []domain.ProfessionSeed{
			{Name: "Режиссер", Group: "Режиссерский цех"},
			{Name: "Режиссер монтажа", Group: "Режиссерский цех"},
			{Name: "Помощник режиссера", Group: "Режиссерский цех"},
			{Name: "Кастинг-директор", Group: "Режиссерский цех"},
			{Name: "Актер", Group: "Актерский цех"},
			{Name: "Актриса", Group: "Актерский цех"},
			{Name: "Каскадер", Group: "Актерский цех"},
			{Name: "Массовка", Group: "Актерский цех"},
			{Name: "Оператор", Group: "Операторский цех"},
			{Name: "Оператор-постановщик", Group: "Операторский цех"},
			{Name: "Ассистент оператора", Group: "Операторский цех"},
			{Name: "Продюсер", Group: "Продюсерский цех"},
			{Name: "Линейный продюсер", Group: "Продюсерский цех"},
			{Name: "Исполнительный продюсер", Group: "Продюсерский цех"},
			{Name: "Сценарист", Group: "Сценарный цех"},
			{Name: "Драматург", Group: "Сценарный цех"},
			{Name: "Автор диалогов", Group: "Сценарный цех"},
			{Name: "Звукорежиссер", Group: "Звукорежиссерский цех"},
			{Name: "Звукооператор", Group: "Звукорежиссерский цех"},
			{Name: "Композитор", Group: "Звукорежиссерский цех"},
			{Name: "Гример", Group: "Гримерный цех"},
			{Name: "Художник по гриму", Group: "Гримерный цех"},
			{Name: "Монтажер", Group: "Монтажный цех"},
			{Name: "Монтажер звука", Group: "Монтажный цех"},
			{Name: "Колорист", Group: "Монтажный цех"},
			{Name: "Художник-постановщик", Group: "Художественный цех"},
			{Name: "Художник по костюмам", Group: "Художественный цех"},
			{Name: "Костюмер", Group: "Художественный цех"},
			{Name: "Декоратор", Group: "Художественный цех"},
			{Name: "Реквизитор", Group: "Технический цех"},
			{Name: "Осветитель", Group: "Технический цех"},
			{Name: "Техник", Group: "Технический цех"},
		},
	}
}
