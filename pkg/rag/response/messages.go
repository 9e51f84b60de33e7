package response

// NoInformationAnswer is returned whenever retrieval comes back empty. It is
// deterministic on purpose: with no grounding context the generation call is
// skipped entirely rather than risking a hallucinated answer.
const NoInformationAnswer = "I couldn't find relevant information in the knowledge base for your query."
