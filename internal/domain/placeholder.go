package domain

import "time"

// PlaceholderEvents returns the fixed fallback list served when every sheet
// comes back empty. The dates are intentionally static so the calendar still
// renders something meaningful while the spreadsheet is unreachable.
func PlaceholderEvents() []Event {
	return []Event{
		placeholder("delivery-fallback-1", KindDelivery,
			"Entrega Proyecto Alpha", "Proyecto Alpha - Entrega Final",
			"Entrega final del proyecto Alpha con toda la documentación requerida",
			"mailto:admin@eest6.edu.ar?subject=Proyecto%20Alpha",
			date(2025, 1, 10), date(2025, 1, 15)),
		placeholder("call-fallback-1", KindCall,
			"Convocatoria Becas 2025", "Becas de Investigación 2025",
			"Apertura de convocatoria para becas de investigación 2025",
			"mailto:becas@eest6.edu.ar?subject=Convocatoria%20Becas%202025",
			date(2024, 12, 20), date(2025, 1, 3)),
		placeholder("request-fallback-1", KindRequest,
			"Solicitud Presupuesto Q1", "Presupuesto Q1 2025",
			"Solicitud de presupuesto para el primer trimestre del año",
			"mailto:finanzas@eest6.edu.ar?subject=Presupuesto%20Q1",
			date(2025, 1, 2), date(2025, 1, 8)),
		placeholder("delivery-fallback-2", KindDelivery,
			"Informe Mensual", "Informe Mensual Diciembre 2024",
			"Entrega del informe mensual de actividades",
			"mailto:reportes@eest6.edu.ar?subject=Informe%20Mensual",
			date(2025, 1, 15), date(2025, 1, 22)),
		placeholder("call-fallback-2", KindCall,
			"Evaluación Proyectos", "Evaluación de Proyectos",
			"Reunión para evaluar los proyectos presentados en la convocatoria",
			"mailto:evaluacion@eest6.edu.ar?subject=Evaluacion%20Proyectos",
			date(2025, 1, 4), date(2025, 1, 10)),
		placeholder("request-fallback-2", KindRequest,
			"Equipos Laboratorio", "Equipos Laboratorio",
			"Solicitud de nuevos equipos para el laboratorio de investigación",
			"mailto:compras@eest6.edu.ar?subject=Equipos%20Lab",
			date(2025, 1, 18), date(2025, 1, 25)),
		placeholder("delivery-fallback-3", KindDelivery,
			"Entrega Documentación", "Documentación Administrativa",
			"Entrega de documentación administrativa del semestre",
			"mailto:admin@eest6.edu.ar?subject=Documentacion",
			date(2025, 1, 24), date(2025, 1, 30)),
		placeholder("call-fallback-3", KindCall,
			"Presentación Resultados", "Resultados Q4 2024",
			"Presentación de resultados del trimestre anterior",
			"mailto:presentaciones@eest6.edu.ar?subject=Resultados%20Q4",
			date(2025, 1, 20), date(2025, 1, 29)),
		placeholder("request-fallback-3", KindRequest,
			"Solicitud Mantenimiento", "Mantenimiento Equipos Lab",
			"Solicitud de mantenimiento para equipos del laboratorio",
			"mailto:mantenimiento@eest6.edu.ar?subject=Mantenimiento",
			date(2025, 1, 6), date(2025, 1, 12)),
	}
}

func placeholder(id string, kind SheetKind, title, subject, description, emailLink string, received, kindDate time.Time) Event {
	return Event{
		ID:           id,
		Title:        title,
		Subject:      subject,
		Description:  description,
		EmailLink:    emailLink,
		Kind:         kind,
		Completed:    false,
		ReceivedDate: SheetDate{Time: received, Status: DateValid},
		KindDate:     SheetDate{Time: kindDate, Status: DateValid},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 9, 0, 0, 0, time.UTC)
}
