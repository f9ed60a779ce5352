package view

import (
	"strings"

	"github.com/startuphub/startuphub/internal/models"
)

// dict holds the strings the views need, keyed by message then language.
// Lookups fall back to Russian.
var dict = map[string]map[string]string{
	"empty.startups":   {models.LangRU: "Стартапы не найдены", models.LangEN: "No startups found", models.LangKZ: "Стартаптар табылмады"},
	"empty.projects":   {models.LangRU: "Проекты отсутствуют", models.LangEN: "No projects", models.LangKZ: "Жобалар жоқ"},
	"empty.message":    {models.LangRU: "Опубликуйте первый стартап", models.LangEN: "Be the first to publish a startup", models.LangKZ: "Бірінші стартапты жариялаңыз"},
	"empty.cta":        {models.LangRU: "Опубликовать стартап", models.LangEN: "Publish Startup", models.LangKZ: "Стартап жариялау"},
	"empty.mentors":    {models.LangRU: "Менторы не найдены", models.LangEN: "No mentors found", models.LangKZ: "Менторлар табылмады"},
	"empty.mentorsMsg": {models.LangRU: "Стать ментором можно через форму на странице обучения", models.LangEN: "You can become a mentor through the form on the learning page", models.LangKZ: "Стать ментором можно через форму на странице обучения"},
	"empty.courses":    {models.LangRU: "Курсы не найдены", models.LangEN: "No courses found", models.LangKZ: "Курстар табылмады"},
	"views":            {models.LangRU: "просмотров", models.LangEN: "views", models.LangKZ: "көрілім"},
	"date.today":       {models.LangRU: "Сегодня", models.LangEN: "Today", models.LangKZ: "Бүгін"},
	"date.yesterday":   {models.LangRU: "Вчера", models.LangEN: "Yesterday", models.LangKZ: "Кеше"},
	"date.days":        {models.LangRU: "%d дней назад", models.LangEN: "%d days ago", models.LangKZ: "%d күн бұрын"},
	"date.weeks":       {models.LangRU: "%d недель назад", models.LangEN: "%d weeks ago", models.LangKZ: "%d апта бұрын"},
	"section.topRated": {models.LangRU: "Топ проектов по рейтингу", models.LangEN: "Top rated projects", models.LangKZ: "Рейтинг бойынша үздік жобалар"},
	"section.topLiked": {models.LangRU: "Топ лайков за неделю", models.LangEN: "Most liked this week", models.LangKZ: "Апта бойы ең көп ұнағандар"},
	"section.latest":   {models.LangRU: "Последние стартапы", models.LangEN: "Latest startups", models.LangKZ: "Соңғы стартаптар"},
	"section.featured": {models.LangRU: "Рекомендуемые проекты", models.LangEN: "Featured projects", models.LangKZ: "Ұсынылған жобалар"},
	"telegram.none":    {models.LangRU: "Telegram не привязан", models.LangEN: "Telegram not linked", models.LangKZ: "Telegram байланыстырылмаған"},

	"notify.published":        {models.LangRU: "Стартап успешно опубликован!", models.LangEN: "Startup published!"},
	"notify.liked":            {models.LangRU: "Стартап понравился!", models.LangEN: "Startup liked!"},
	"notify.unliked":          {models.LangRU: "Лайк удален", models.LangEN: "Like removed"},
	"notify.filtersReset":     {models.LangRU: "Фильтры сброшены", models.LangEN: "Filters reset"},
	"notify.draftSaved":       {models.LangRU: "Черновик сохранен", models.LangEN: "Draft saved"},
	"notify.deleted":          {models.LangRU: "Стартап удален", models.LangEN: "Startup deleted"},
	"notify.loggedIn":         {models.LangRU: "Вход выполнен успешно!", models.LangEN: "Signed in!"},
	"notify.registered":       {models.LangRU: "Регистрация прошла успешно!", models.LangEN: "Registration complete!"},
	"notify.loggedOut":        {models.LangRU: "Вы вышли из системы", models.LangEN: "Signed out"},
	"notify.profileSaved":     {models.LangRU: "Профиль сохранен", models.LangEN: "Profile saved"},
	"notify.telegramLinked":   {models.LangRU: "Telegram %s успешно привязан", models.LangEN: "Telegram %s linked"},
	"notify.contact":          {models.LangRU: "Контакты: %s", models.LangEN: "Contacts: %s"},
	"notify.mentorContact":    {models.LangRU: "Свяжитесь с %s через форму на сайте", models.LangEN: "Reach %s through the form on the site"},
	"notify.missing":          {models.LangRU: "Заполните обязательные поля: %s", models.LangEN: "Fill in the required fields: %s"},
	"notify.allFields":        {models.LangRU: "Заполните все поля", models.LangEN: "Fill in all fields"},
	"notify.passwordMismatch": {models.LangRU: "Пароли не совпадают", models.LangEN: "Passwords do not match"},
	"notify.passwordShort":    {models.LangRU: "Пароль должен содержать минимум 6 символов", models.LangEN: "Password must be at least 6 characters"},
	"notify.telegramRequired": {models.LangRU: "Введите Telegram username", models.LangEN: "Enter a Telegram username"},
	"notify.telegramFormat":   {models.LangRU: "Telegram username должен начинаться с @", models.LangEN: "Telegram username must start with @"},
	"notify.signInRequired":   {models.LangRU: "Сначала необходимо зарегистрироваться", models.LangEN: "Please sign in first"},
	"notify.notFound":         {models.LangRU: "Стартап не найден", models.LangEN: "Startup not found"},
	"notify.confirmDelete":    {models.LangRU: "Вы уверены, что хотите удалить этот стартап?", models.LangEN: "Delete this startup?"},
	"notify.invalid":          {models.LangRU: "Некорректные данные: %s", models.LangEN: "Invalid values: %s"},
	"notify.badRequest":       {models.LangRU: "Не удалось прочитать данные формы", models.LangEN: "Could not read the form data"},
	"notify.internal":         {models.LangRU: "Не удалось сохранить данные", models.LangEN: "Could not save data"},
	"notify.tooMany":          {models.LangRU: "Слишком много запросов", models.LangEN: "Too many requests"},
}

// T returns the localized string for key, or key itself when unknown.
func T(lang, key string) string {
	m, ok := dict[key]
	if !ok {
		return key
	}
	if v, ok := m[lang]; ok {
		return v
	}
	return m[models.LangRU]
}

var fieldLabels = map[string]map[string]string{
	"name":            {models.LangRU: "Название стартапа", models.LangEN: "Startup name"},
	"goal":            {models.LangRU: "Цель проекта", models.LangEN: "Project goal"},
	"description":     {models.LangRU: "Полное описание", models.LangEN: "Full description"},
	"category":        {models.LangRU: "Категория", models.LangEN: "Category"},
	"stage":           {models.LangRU: "Стадия проекта", models.LangEN: "Project stage"},
	"contactEmail":    {models.LangRU: "Контактный email", models.LangEN: "Contact email"},
	"telegramContact": {models.LangRU: "Telegram для связи", models.LangEN: "Telegram contact"},
}

// FieldLabels localizes validation field keys; unknown keys pass through.
func FieldLabels(lang string, fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f
		if m, ok := fieldLabels[f]; ok {
			if v, ok := m[lang]; ok {
				out[i] = v
			} else {
				out[i] = m[models.LangRU]
			}
		}
	}
	return strings.Join(out, ", ")
}

var stageLabels = map[string]map[string]string{
	"idea":    {models.LangRU: "Идея", models.LangEN: "Idea", models.LangKZ: "Идея"},
	"mvp":     {models.LangRU: "MVP", models.LangEN: "MVP", models.LangKZ: "MVP"},
	"beta":    {models.LangRU: "Бета", models.LangEN: "Beta", models.LangKZ: "Бета"},
	"ready":   {models.LangRU: "Готово", models.LangEN: "Ready", models.LangKZ: "Даяр"},
	"scaling": {models.LangRU: "Масштабирование", models.LangEN: "Scaling", models.LangKZ: "Масштабтау"},
}

// StageLabel localizes a stage; unknown stages are shown as is.
func StageLabel(stage, lang string) string {
	m, ok := stageLabels[stage]
	if !ok {
		return stage
	}
	if v, ok := m[lang]; ok {
		return v
	}
	return m[models.LangRU]
}

func StageColor(stage string) string {
	switch stage {
	case "idea":
		return "#F59E0B"
	case "mvp":
		return "#3B82F6"
	case "ready":
		return "#10B981"
	case "scaling":
		return "#8B5CF6"
	}
	return "#6B7280"
}
