/*
Package job loads operation sequences from YAML or JSON files.

	name: register
	operations:
	  - createPatient:
	      params: {name: Ada}
	  - create:
	      path: encounter
	      params:
	        patientId: {$data: id}
	  - post:
	      url: https://hooks.example.org/notify
	      body: {patient: {$last: "$.id"}}
	      headers: {X-Source: adaptor}

Maps of the form {$ref: path}, {$data: path} and {$last: path} become
SourceValue, DataValue and LastReferenceValue placeholders.
*/
package job
