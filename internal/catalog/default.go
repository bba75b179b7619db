package catalog

// Question blocks of the JII 2025 satisfaction survey.
var (
	generalQuestions = []Question{
		{ID: 1, Text: "¿Cómo calificas la organización de la JII?", Type: TypeRating},
		{ID: 2, Text: "¿Cómo calificas los horarios de la JII?", Type: TypeRating},
		{ID: 3, Text: "¿Cómo calificas la duración de las actividades?", Type: TypeRating},
		{ID: 4, Text: "Especifica la razón principal por la que asististe a la JII:", Type: TypeShortText},
		{ID: 5, Text: "¿Cumplieron tus expectativas las actividades en las que participaste?", Type: TypeRating},
		{ID: 6, Text: "¿Los contenidos desarrollados resultaron útiles?", Type: TypeRating},
		{ID: 7, Text: "¿Qué tan relevante consideras que fue el nivel profesional de la JII?", Type: TypeRating},
		{ID: 8, Text: "¿Qué conferencia magistral te pareció la más relevante?", Type: TypeSingleSelect},
		{ID: 10, Text: "¿Qué actividad consideras que fue la de mayor relevancia?", Type: TypeSingleSelect},
		{ID: 11, Text: "¿Cuáles fueron para ti los puntos fuertes de la JII? ¿Por qué?", Type: TypeLongText},
		{ID: 12, Text: "¿Qué parte te gustó menos? ¿Por qué?", Type: TypeLongText},
		{ID: 13, Text: "Propón tres temas de tu interés para la edición 2026 de la JII.", Type: TypeLongText},
		{ID: 14, Text: "¿Qué sugerencias podrías aportar para mejorar la próxima edición de la JII?", Type: TypeLongText},
		{ID: 15, Text: "En términos generales, ¿Cómo calificaría la Jornada de Ingeniería Industrial 2025?", Type: TypeRating},
		{ID: 16, Text: "Comentarios adicionales:", Type: TypeLongText},
	}

	workshopQuestions = []Question{
		{ID: 17, Text: "Valora el workshop al que asististe (1=Muy Malo, 5=Excelente)", Type: TypeRating},
		{ID: 18, Text: "Comentarios sobre el workshop", Type: TypeLongText},
	}

	mundialitoQuestions = []Question{
		{ID: 19, Text: "Valora el Mundialito Mexicano", Type: TypeRating},
		{ID: 20, Text: "Comentarios sobre el Mundialito Mexicano", Type: TypeLongText},
	}
)

// Default returns the catalog the event was run with.
func Default() *Catalog {
	var all []Question
	all = append(all, generalQuestions...)
	all = append(all, workshopQuestions...)
	all = append(all, mundialitoQuestions...)

	categories := []Category{
		{Name: "Preguntas Generales", QuestionIDs: ratingIDs(generalQuestions)},
		{Name: "Workshop", QuestionIDs: ratingIDs(workshopQuestions)},
		{Name: "Mundialito Mexicano", QuestionIDs: ratingIDs(mundialitoQuestions)},
	}

	c, err := New(all, categories)
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return c
}

func ratingIDs(block []Question) []int {
	var ids []int
	for _, q := range block {
		if q.Type == TypeRating {
			ids = append(ids, q.ID)
		}
	}
	return ids
}
