// Package graph defines the normalized schema graph consumed by the walker.
//
// A [Document] holds component schemas, operations and webhooks. Schemas are
// trees of [Node] values that may point at each other through $ref ids,
// forming self-referential or mutually recursive shapes. Nodes are loaded
// once with [Load] or [Parse] and treated as read-only afterwards.
//
// Documents are YAML or JSON:
//
//	components:
//	  schemas:
//	    Node:
//	      type: object
//	      properties:
//	        children:
//	          type: array
//	          items:
//	            - $ref: '#/components/schemas/Node'
//
// Property order is preserved exactly as written, which keeps generated
// output stable across runs.
package graph
