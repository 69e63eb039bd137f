package services

import "github.com/gomot-academy/bitacora-core/internal/core/domain"

// fallbackCatalog holds pre-authored problems served when the completion
// provider is unreachable. Every problem type has at least two entries so
// repeated fallbacks do not always show the same problem.
var fallbackCatalog = map[domain.ProblemType][]domain.ProblemStatement{
	domain.ProblemMatematico: {
		{
			Title:     "El tanque que gotea",
			Context:   "Un tanque de agua de 200 litros tiene una fuga. Cada hora pierde aproximadamente el 5% del agua que le queda.",
			Challenge: "¿Cuánta agua quedará después de un día completo? ¿El tanque se vaciará alguna vez por completo? Justifica tu razonamiento.",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Calcula cuánta agua queda después de la primera hora y luego de la segunda.",
				Intermedio: "Busca un patrón: ¿qué operación se repite hora tras hora?",
				Avanzado:   "Expresa el agua restante como una función del número de horas y analiza su comportamiento a largo plazo.",
			},
			ExpectedApproaches:   []string{"tabla de valores hora a hora", "modelo exponencial decreciente", "análisis de límite"},
			MetacognitivePrompts: []string{"¿Qué supuesto hiciste sobre la fuga?", "¿Cómo comprobarías tu respuesta con otro método?"},
		},
		{
			Title:     "La escalera de papel",
			Context:   "Doblas una hoja de papel por la mitad, luego otra vez por la mitad, y así sucesivamente. Cada doblez duplica el grosor.",
			Challenge: "¿Cuántos dobleces necesitarías para que el grosor alcance la altura de tu escuela? ¿Y la Luna? ¿Es posible hacerlo físicamente?",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Mide o estima el grosor de una hoja y calcula el grosor tras 5 dobleces.",
				Intermedio: "Organiza tus resultados en una tabla y observa cómo crece el grosor.",
				Avanzado:   "Plantea una ecuación con potencias de 2 y resuélvela para las alturas pedidas.",
			},
			ExpectedApproaches:   []string{"duplicación sucesiva", "crecimiento exponencial", "estimación de órdenes de magnitud"},
			MetacognitivePrompts: []string{"¿Qué te sorprendió del resultado?", "¿Dónde falla el modelo en la realidad?"},
		},
	},
	domain.ProblemFisico: {
		{
			Title:     "La carrera de las latas",
			Context:   "Dos latas idénticas por fuera ruedan por la misma rampa: una contiene sopa líquida y la otra frijoles sólidos.",
			Challenge: "¿Cuál llega primero al final de la rampa? Diseña un experimento para averiguarlo y explica el resultado.",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Describe qué variables podrían afectar el descenso de cada lata.",
				Intermedio: "Piensa en cómo se mueve el contenido dentro de cada lata mientras rueda.",
				Avanzado:   "Relaciona tu observación con la distribución de masa y la energía de rotación.",
			},
			ExpectedApproaches:   []string{"experimento controlado con rampa", "análisis de inercia rotacional", "comparación de energías"},
			MetacognitivePrompts: []string{"¿Tu predicción inicial coincidió con el experimento?", "¿Qué variable no pudiste controlar?"},
		},
		{
			Title:     "El charco que desaparece",
			Context:   "Después de la lluvia, un charco en el patio se seca en unas horas aunque nadie lo toca y no hay drenaje.",
			Challenge: "¿A dónde se va el agua? Diseña una forma de medir qué tan rápido desaparece y qué factores aceleran el proceso.",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Marca el borde del charco cada cierto tiempo y registra lo que observas.",
				Intermedio: "Compara charcos al sol y a la sombra, o con y sin viento.",
				Avanzado:   "Explica tus mediciones usando el modelo de partículas de la materia.",
			},
			ExpectedApproaches:   []string{"medición sistemática", "experimento comparativo", "modelo de evaporación"},
			MetacognitivePrompts: []string{"¿Qué evidencia apoya tu explicación?", "¿Qué otra explicación descartaste y por qué?"},
		},
	},
	domain.ProblemIntegrado: {
		{
			Title:     "El huerto escolar óptimo",
			Context:   "Tu escuela destina un terreno rectangular de 12 x 8 metros para un huerto. Hay zonas con distinta cantidad de sol y un presupuesto limitado de agua.",
			Challenge: "Diseña la distribución del huerto: qué sembrar, dónde y cómo regar, de modo que se aproveche al máximo el terreno. Fundamenta cada decisión con datos.",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Haz un plano del terreno y marca las zonas de sol y sombra.",
				Intermedio: "Investiga los requisitos de agua y luz de tres cultivos y compáralos en una tabla.",
				Avanzado:   "Plantea el problema como una optimización con restricciones y defiende tu diseño.",
			},
			ExpectedApproaches:   []string{"mapeo y medición del terreno", "tabla comparativa de cultivos", "optimización con restricciones"},
			MetacognitivePrompts: []string{"¿Qué criterio pesó más en tu diseño?", "¿Cómo evaluarías si tu huerto funciona después de un mes?"},
		},
		{
			Title:     "El puente de espagueti",
			Context:   "Con 40 tiras de espagueti y pegamento debes construir un puente que cruce 30 cm y soporte el mayor peso posible.",
			Challenge: "Diseña, construye y prueba tu puente. Predice cuánto peso soportará antes de probarlo y explica por qué falla donde falla.",
			Scaffolding: domain.Scaffolding{
				Inicial:    "Prueba cuánto peso soporta una sola tira apoyada en sus extremos.",
				Intermedio: "Compara formas: ¿una viga recta o un triángulo soportan más?",
				Avanzado:   "Usa tus mediciones para estimar la resistencia total y contrástala con la prueba final.",
			},
			ExpectedApproaches:   []string{"prueba de materiales", "diseño estructural con triángulos", "predicción cuantitativa y contraste"},
			MetacognitivePrompts: []string{"¿Qué cambiarías en una segunda versión?", "¿Tu predicción fue alta o baja, y por qué?"},
		},
	},
}
