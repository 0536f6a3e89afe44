package catalog

import "barbershop/models"

// DefaultServices is the menu a new shop starts with.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: "corte-masculino", Name: "Corte Masculino", Duration: 30, Price: 50, Description: "Corte na tesoura ou máquina", Active: true},
		{ID: "barba", Name: "Barba", Duration: 20, Price: 35, Description: "Barba com toalha quente", Active: true},
		{ID: "corte-barba", Name: "Corte + Barba", Duration: 50, Price: 80, Active: true},
		{ID: "sobrancelha", Name: "Sobrancelha", Duration: 15, Price: 20, Active: true},
		{ID: "pigmentacao", Name: "Pigmentação", Duration: 40, Price: 60, Active: true},
	}
}

// DefaultProfessionals is the team a new shop starts with.
func DefaultProfessionals() []models.Professional {
	return []models.Professional{
		{ID: "carlos", Name: "Carlos Silva", Role: "Barbeiro", Active: true},
		{ID: "rafael", Name: "Rafael Souza", Role: "Barbeiro", Active: true},
		{ID: "juliana", Name: "Juliana Costa", Role: "Designer de sobrancelhas", Active: true},
	}
}
