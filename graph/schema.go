package graph

// SchemaDescription is the fixed description of the email graph supplied to
// the query-generation prompt. It enumerates the node labels, relationship
// types and properties a generated statement may reference.
const SchemaDescription = `Node labels and properties:
  Person: personId, name, email
  Email: emailId, revisionId, documentId, subject, content, senderId, senderName, timeReceived

Relationship types:
  (Person)-[:SENT]->(Email)
  (Person)-[:RECEIVED]->(Email)

Vector indexes:
  emailEmbeddings on (Email).embedding over content, subject, revisionId`
