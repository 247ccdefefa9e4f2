package graph

import (
	"time"

	"github.com/bkimathi/eventbook/internal/domain/event"
	"github.com/graphql-go/graphql"
)

// NewSchema declares the type system and binds each field to its resolver.
// Relation fields (Event.creator, User.createdEvents) get their own resolver
// functions, so the executor invokes them only when the incoming query
// selects them; a query touching only scalars never hits the store twice.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"password": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// the stored hash never leaves the server
					return nil, nil
				},
			},
		},
	})

	eventType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Event",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
			},
			"title": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"description": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"price": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
			},
			"date": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					ev, ok := p.Source.(event.Event)

					if !ok {
						return nil, nil
					}

					return ev.Date.Format(time.RFC3339), nil
				},
			},
			"creator": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.resolveEventCreator,
			},
		},
	})

	// added after both types exist, User and Event reference each other
	userType.AddFieldConfig("createdEvents", &graphql.Field{
		Type:    graphql.NewList(graphql.NewNonNull(eventType)),
		Resolve: r.resolveUserCreatedEvents,
	})

	userInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"email": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.String),
			},
			"password": &graphql.InputObjectFieldConfig{
				Type: graphql.String,
			},
		},
	})

	eventInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "EventInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.String),
			},
			"description": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.String),
			},
			"price": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.Float),
			},
			"date": &graphql.InputObjectFieldConfig{
				Type: graphql.NewNonNull(graphql.String),
			},
		},
	})

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"events": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(eventType))),
				Resolve: r.resolveEvents,
			},
		},
	})

	rootMutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootMutation",
		Fields: graphql.Fields{
			"createEvent": &graphql.Field{
				Type: eventType,
				Args: graphql.FieldConfigArgument{
					"eventInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(eventInput),
					},
				},
				Resolve: r.resolveCreateEvent,
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInput": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(userInput),
					},
				},
				Resolve: r.resolveCreateUser,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: rootMutation,
	})
}
